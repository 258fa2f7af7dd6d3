package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type CatalogStore interface {
	LoadMarket(ctx context.Context) (domain.MarketCatalog, error)
	LoadCountries(ctx context.Context) ([]domain.Country, error)
	LoadPlantLevels(ctx context.Context) ([]domain.PlantLevel, error)
	ImportCatalog(ctx context.Context, market domain.MarketCatalog, countries []domain.Country, plantLevels []domain.PlantLevel) error
}

type CaravanStore interface {
	SaveCaravan(ctx context.Context, record *domain.CaravanRecord) error
	GetCaravan(ctx context.Context, id uuid.UUID) (*domain.CaravanRecord, error)
	ListCaravans(ctx context.Context, opts ListCaravansOpts) ([]*domain.CaravanRecord, error)
}

type Store interface {
	CatalogStore
	CaravanStore
	Migrate(ctx context.Context) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

func (s *store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

const schema = `
create table if not exists countries (
	id         bigint primary key,
	name       text   not null,
	short_name text   not null default '',
	relations  int    not null default 0,
	embargo    int    not null default 0
);

create table if not exists resources (
	id            bigserial primary key,
	identificator text   not null,
	name          text   not null,
	country_id    bigint not null,
	side          text   not null,
	price         jsonb,
	unique (country_id, side, identificator)
);

create table if not exists plant_levels (
	id                bigint primary key,
	name              text    not null,
	level             int     not null default 1,
	tech_schools_open boolean not null default false,
	formulas          jsonb   not null default '[]'
);

create table if not exists caravan_settlements (
	id         uuid primary key,
	country_id bigint      not null,
	sells      jsonb       not null,
	buys       jsonb       not null,
	result     jsonb       not null,
	created_at timestamptz not null default now()
);

create index if not exists caravan_settlements_country_idx on caravan_settlements (country_id, created_at desc);
`
