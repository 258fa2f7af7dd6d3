package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/spf13/cobra"
)

func runOffline(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	prev := dataDir
	dataDir = "../../data"
	t.Cleanup(func() { dataDir = prev })

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSettleCommand(t *testing.T) {
	out, err := runOffline(t, newSettleCmd(), "--country", "1", "--sell", "wood=10,dragon=1", "--buy", "iron=1")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"Hanseatic League", "Sale income:   20", "Purchase cost: 10", "Skipped", "dragon"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestSettleCommandRejectsOverflow(t *testing.T) {
	_, err := runOffline(t, newSettleCmd(), "--country", "1", "--sell", "wood=9223372036854775807")
	if !errors.Is(err, constants.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestConvertCommand(t *testing.T) {
	out, err := runOffline(t, newConvertCmd(), "--plant", "1", "--request", "wood=7")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Plank") || !strings.Contains(out, "change") {
		t.Errorf("output:\n%s", out)
	}
}

func TestPrintPlants(t *testing.T) {
	var out bytes.Buffer
	err := printPlants(&out, []domain.PlantLevel{{ID: 7, Name: "Smithy", Level: 3, TechSchoolsOpen: true}})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Smithy", "true"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}
