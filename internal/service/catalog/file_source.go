package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ougirez/eracalc/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	fileMarket      = "market.yaml"
	fileCountries   = "countries.yaml"
	filePlantLevels = "plant_levels.yaml"
)

// FileSource reads reference data from YAML files in one directory:
// market.yaml, countries.yaml and plant_levels.yaml.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) LoadMarket(_ context.Context) (domain.MarketCatalog, error) {
	var market domain.MarketCatalog
	if err := s.read(fileMarket, &market); err != nil {
		return domain.MarketCatalog{}, err
	}
	return market, nil
}

func (s *FileSource) LoadCountries(_ context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if err := s.read(fileCountries, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (s *FileSource) LoadPlantLevels(_ context.Context) ([]domain.PlantLevel, error) {
	var plantLevels []domain.PlantLevel
	if err := s.read(filePlantLevels, &plantLevels); err != nil {
		return nil, err
	}
	return plantLevels, nil
}

func (s *FileSource) read(name string, out interface{}) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return nil
}
