package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/domain/dto"
	"github.com/ougirez/eracalc/internal/pkg/utils"
	"github.com/ougirez/eracalc/internal/service/caravan"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/ougirez/eracalc/internal/service/production"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	infoColor  = color.New(color.FgYellow)
)

func loadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	dir := catalogDir()
	snap, err := catalog.NewRegistry(catalog.NewFileSource(dir)).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", dir, err)
	}
	return snap, nil
}

func newSettleCmd() *cobra.Command {
	var (
		countryID int64
		sells     string
		buys      string
	)

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle a caravan against the YAML catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			sellList, err := utils.ParseResourceCounts(sells)
			if err != nil {
				return err
			}
			buyList, err := utils.ParseResourceCounts(buys)
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			settlement, err := caravan.NewEngine().SettleCaravan(cmd.Context(), snap, countryID, sellList, buyList)
			if err != nil {
				return err
			}

			return printSettlement(cmd.OutOrStdout(), snap, settlement)
		},
	}

	cmd.Flags().Int64Var(&countryID, "country", 0, "Country id")
	cmd.Flags().StringVar(&sells, "sell", "", "Player sells, e.g. gold=100,wood=10")
	cmd.Flags().StringVar(&buys, "buy", "", "Player buys, e.g. iron=5")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func newConvertCmd() *cobra.Command {
	var (
		plantLevelID int64
		way          string
		request      string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Run resources through a plant level's formulas",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := utils.ParseResourceCounts(request)
			if err != nil {
				return err
			}

			items := make([]dto.ProductionItem, 0, len(counts))
			for _, c := range counts {
				items = append(items, dto.ProductionItem{
					Identificator: c.Identificator,
					Count:         decimal.NewFromInt(c.Count),
				})
			}

			parsedWay, err := domain.ParseWay(way)
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			conversion, err := production.NewSolver().Convert(cmd.Context(), snap, plantLevelID, items, parsedWay)
			if err != nil {
				return err
			}

			return printConversion(cmd.OutOrStdout(), conversion)
		},
	}

	cmd.Flags().Int64Var(&plantLevelID, "plant", 0, "Plant level id")
	cmd.Flags().StringVar(&way, "way", string(domain.WayFrom), "Request direction: from (raw inputs) or to (finished goods)")
	cmd.Flags().StringVar(&request, "request", "", "Requested resources, e.g. wood=7")
	_ = cmd.MarkFlagRequired("plant")

	return cmd
}

func newPlantsCmd() *cobra.Command {
	var plantType string

	cmd := &cobra.Command{
		Use:   "plants",
		Short: "List plant levels from the YAML catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			plants := snap.PlantLevels()
			if plantType != "" {
				plants = snap.PlantsByType(plantType)
			}

			return printPlants(cmd.OutOrStdout(), plants)
		},
	}

	cmd.Flags().StringVar(&plantType, "type", "", "Only plants with this name")

	return cmd
}

func printSettlement(w io.Writer, snap *catalog.Snapshot, s *domain.Settlement) error {
	country, err := snap.Country(s.CountryID)
	name := fmt.Sprintf("#%d", s.CountryID)
	if err == nil {
		name = country.Name
	}

	titleColor.Fprintf(w, "\nCaravan to %s\n", name)
	infoColor.Fprintf(w, "Embargo: %d\n\n", s.Embargo)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Name", "Count"}),
	)
	for _, r := range s.ResToPlayer {
		if err := table.Append([]string{r.Identificator, r.Name, fmt.Sprintf("%d", r.Count)}); err != nil {
			return fmt.Errorf("table.Append: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("table.Render: %w", err)
	}

	fmt.Fprintf(w, "\nSale income:   %d\n", s.TotalSaleIncome)
	fmt.Fprintf(w, "Purchase cost: %d\n", s.TotalPurchaseCost)

	if len(s.Skipped) == 0 {
		return nil
	}

	infoColor.Fprint(w, "\nSkipped:\n")
	skipped := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Side", "Reason"}),
	)
	for _, item := range s.Skipped {
		if err := skipped.Append([]string{item.Identificator, string(item.Side), string(item.Reason)}); err != nil {
			return fmt.Errorf("table.Append: %w", err)
		}
	}
	if err := skipped.Render(); err != nil {
		return fmt.Errorf("table.Render: %w", err)
	}
	return nil
}

func printConversion(w io.Writer, c *domain.Conversion) error {
	titleColor.Fprintf(w, "\nPlant level %d, way %s\n\n", c.PlantLevelID, c.Way)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Part", "Resource", "Name", "Count"}),
	)
	for _, part := range []struct {
		label string
		items []domain.ResourceCount
	}{
		{"from", c.From},
		{"to", c.To},
		{"change", c.Change},
	} {
		for _, r := range part.items {
			if err := table.Append([]string{part.label, r.Identificator, r.Name, fmt.Sprintf("%d", r.Count)}); err != nil {
				return fmt.Errorf("table.Append: %w", err)
			}
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("table.Render: %w", err)
	}
	return nil
}

func printPlants(w io.Writer, plants []domain.PlantLevel) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"ID", "Name", "Level", "Schools", "Formulas"}),
	)
	for _, p := range plants {
		err := table.Append([]string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			fmt.Sprintf("%d", p.Level),
			fmt.Sprintf("%t", p.TechSchoolsOpen),
			fmt.Sprintf("%d", len(p.Formulas)),
		})
		if err != nil {
			return fmt.Errorf("table.Append: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("table.Render: %w", err)
	}
	return nil
}
