package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/store"
	"github.com/ougirez/eracalc/internal/pkg/utils"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const testSecret = "test-secret"

type memoryJournal struct {
	mu      sync.Mutex
	records []*domain.CaravanRecord
}

func (j *memoryJournal) SaveCaravan(_ context.Context, record *domain.CaravanRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, record)
	return nil
}

func (j *memoryJournal) GetCaravan(_ context.Context, id uuid.UUID) (*domain.CaravanRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, r := range j.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (j *memoryJournal) ListCaravans(context.Context, store.ListCaravansOpts) ([]*domain.CaravanRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]*domain.CaravanRecord(nil), j.records...), nil
}

func testSnapshot() *catalog.Snapshot {
	market := domain.MarketCatalog{
		OffMarket: []domain.Resource{
			{Identificator: "iron", Name: "Iron", CountryID: 1, Price: domain.FlatPrice(decimal.NewFromInt(12))},
		},
		ToMarket: []domain.Resource{
			{Identificator: "wood", Name: "Wood", CountryID: 1, Price: domain.FlatPrice(decimal.NewFromInt(2))},
		},
	}
	countries := []domain.Country{{ID: 1, Name: "Hansa", Relations: 1}}
	plants := []domain.PlantLevel{{
		ID:   1,
		Name: "Sawmill",
		Formulas: []domain.Formula{{
			From:       []domain.ResourceCount{{Identificator: "wood", Count: 2}},
			To:         []domain.ResourceCount{{Identificator: "plank", Count: 1}},
			MaxProduct: []domain.ResourceCount{{Identificator: "plank", Count: 10}},
		}},
	}}
	return catalog.NewSnapshot(market, countries, plants)
}

func newTestAPI(t *testing.T, loaded bool, journal store.CaravanStore) *APIService {
	t.Helper()
	viper.Set(constants.ViperSecretKey, testSecret)

	registry := catalog.NewRegistry(nil)
	if loaded {
		registry.Set(testSnapshot())
	}

	svc, err := NewAPIService(Dependencies{Registry: registry, Journal: journal})
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{GameMaster: "master"}, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func do(svc *APIService, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, req)
	return rec
}

func TestCalculateCaravan(t *testing.T) {
	svc := newTestAPI(t, true, nil)

	rec := do(svc, http.MethodPost, "/api/v1/caravans/calculate",
		`{"country_id": 1, "res_pl_sells": [{"identificator": "wood", "count": 10}], "res_pl_buys": [{"identificator": "iron", "count": 1}]}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var settlement domain.Settlement
	if err := json.Unmarshal(rec.Body.Bytes(), &settlement); err != nil {
		t.Fatal(err)
	}
	if settlement.Gold() != 8 || settlement.TotalSaleIncome != 20 || settlement.TotalPurchaseCost != 12 {
		t.Errorf("settlement = %+v", settlement)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		method string
		target string
		body   string
		token  bool
		want   int
	}{
		{"validation", true, http.MethodPost, "/api/v1/caravans/calculate", `{"country_id": 0}`, false, http.StatusBadRequest},
		{"sells not a list", true, http.MethodPost, "/api/v1/caravans/calculate", `{"country_id": 1, "res_pl_sells": {"identificator": "wood", "count": 1}}`, false, http.StatusBadRequest},
		{"buys not a list", true, http.MethodPost, "/api/v1/caravans/calculate", `{"country_id": 1, "res_pl_buys": "iron"}`, false, http.StatusBadRequest},
		{"sale beyond int64", true, http.MethodPost, "/api/v1/caravans/calculate", `{"country_id": 1, "res_pl_sells": [{"identificator": "wood", "count": 9223372036854775807}]}`, false, http.StatusBadRequest},
		{"malformed json", true, http.MethodPost, "/api/v1/caravans/calculate", `{"country_id":`, false, http.StatusBadRequest},
		{"catalog not loaded", false, http.MethodPost, "/api/v1/caravans/calculate", `{"country_id": 1}`, false, http.StatusServiceUnavailable},
		{"unknown country", true, http.MethodGet, "/api/v1/countries/99", "", false, http.StatusNotFound},
		{"bad country id", true, http.MethodGet, "/api/v1/countries/abc", "", false, http.StatusBadRequest},
		{"unknown plant", true, http.MethodPost, "/api/v1/plants/42/convert", `{"request": []}`, false, http.StatusNotFound},
		{"bad way", true, http.MethodPost, "/api/v1/plants/1/convert", `{"way": "up"}`, false, http.StatusBadRequest},
		{"admin without token", true, http.MethodGet, "/api/v1/caravans", "", false, http.StatusUnauthorized},
		{"journal disabled", true, http.MethodPost, "/api/v1/caravans", `{"country_id": 1}`, true, http.StatusNotImplemented},
		{"board without backend", true, http.MethodGet, "/api/v1/results/board", "", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAPI(t, tt.loaded, nil)

			token := ""
			if tt.token {
				token = adminToken(t)
			}

			rec := do(svc, tt.method, tt.target, tt.body, token)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.want, rec.Body)
			}

			var resp domain.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.want || resp.Message == "" {
				t.Errorf("error body = %+v", resp)
			}
		})
	}
}

func TestAdminRejectsForeignToken(t *testing.T) {
	svc := newTestAPI(t, true, &memoryJournal{})

	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{GameMaster: "master"}, "other-secret")
	if err != nil {
		t.Fatal(err)
	}

	if rec := do(svc, http.MethodGet, "/api/v1/caravans", "", token); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSendAndFetchCaravan(t *testing.T) {
	journal := &memoryJournal{}
	svc := newTestAPI(t, true, journal)
	token := adminToken(t)

	rec := do(svc, http.MethodPost, "/api/v1/caravans",
		`{"country_id": 1, "res_pl_sells": [{"identificator": "wood", "count": 3}]}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var settlement domain.Settlement
	if err := json.Unmarshal(rec.Body.Bytes(), &settlement); err != nil {
		t.Fatal(err)
	}
	if settlement.ID == nil {
		t.Fatal("sent caravan has no id")
	}

	rec = do(svc, http.MethodGet, "/api/v1/caravans/"+settlement.ID.String(), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = do(svc, http.MethodGet, "/api/v1/caravans/not-a-uuid", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}

	rec = do(svc, http.MethodGet, "/api/v1/caravans?country_id=1", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var records []domain.CaravanRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Result.Gold() != 6 {
		t.Errorf("records = %+v", records)
	}
}

func TestConvertAndCatalogRoutes(t *testing.T) {
	svc := newTestAPI(t, true, nil)

	rec := do(svc, http.MethodPost, "/api/v1/plants/1/convert", `{"request": [{"identificator": "wood", "count": "7"}], "way": "from"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("convert status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"plank"`) {
		t.Errorf("convert body = %s", rec.Body)
	}

	rec = do(svc, http.MethodGet, "/api/v1/plants/types", "", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `["Sawmill"]` {
		t.Errorf("types = %d %s", rec.Code, rec.Body)
	}

	rec = do(svc, http.MethodGet, "/api/v1/catalog/status", "", "")
	var status domain.CatalogStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Loaded || status.Countries != 1 || status.PlantLevels != 1 || status.OffMarket != 1 {
		t.Errorf("status = %+v", status)
	}
}
