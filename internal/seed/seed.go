// Package seed populates an empty database with default currencies and a
// standard chart of accounts. A YAML file can replace the default chart.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/models"
	"github.com/mxbcash/mxbcash/internal/store"
)

// ChartNode is one account in a chart-of-accounts file. Children inherit the
// commodity and account type unless they override them.
type ChartNode struct {
	Name        string             `yaml:"name"`
	Type        models.AccountType `yaml:"type,omitempty"`
	Commodity   string             `yaml:"commodity,omitempty"`
	Placeholder bool               `yaml:"placeholder,omitempty"`
	Description string             `yaml:"description,omitempty"`
	Children    []ChartNode        `yaml:"children,omitempty"`
}

type currencySpec struct {
	Mnemonic string
	Name     string
	Fraction int64
}

var defaultCurrencies = []currencySpec{
	{"USD", "US Dollar", 100},
	{"EUR", "Euro", 100},
	{"GBP", "British Pound", 100},
	{"JPY", "Japanese Yen", 1},
	{"INR", "Indian Rupee", 100},
	{"CAD", "Canadian Dollar", 100},
	{"AUD", "Australian Dollar", 100},
	{"CHF", "Swiss Franc", 100},
}

func defaultChart() []ChartNode {
	return []ChartNode{
		{Name: "Assets", Type: models.AccountTypeAsset, Placeholder: true, Children: []ChartNode{
			{Name: "Current Assets", Placeholder: true, Children: []ChartNode{
				{Name: "Checking"},
				{Name: "Savings"},
			}},
		}},
		{Name: "Liabilities", Type: models.AccountTypeLiability, Placeholder: true, Children: []ChartNode{
			{Name: "Credit Cards"},
			{Name: "Loans"},
		}},
		{Name: "Equity", Type: models.AccountTypeEquity, Placeholder: true, Children: []ChartNode{
			{Name: "Opening Balance"},
		}},
		{Name: "Income", Type: models.AccountTypeIncome, Placeholder: true, Children: []ChartNode{
			{Name: "Salary"},
			{Name: "Other Income"},
		}},
		{Name: "Expenses", Type: models.AccountTypeExpense, Placeholder: true, Children: []ChartNode{
			{Name: "Food", Placeholder: true, Children: []ChartNode{
				{Name: "Groceries"},
				{Name: "Restaurants"},
			}},
			{Name: "Housing", Placeholder: true, Children: []ChartNode{
				{Name: "Rent"},
				{Name: "Utilities"},
			}},
			{Name: "Transportation", Placeholder: true, Children: []ChartNode{
				{Name: "Gas"},
				{Name: "Public Transit"},
			}},
		}},
	}
}

// Run seeds currencies and the chart of accounts when the database holds no
// accounts yet. It is a no-op otherwise.
func Run(st *store.Store, svc *ledger.Service, chartFile string) error {
	count, err := st.CountAccounts()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	currencyIDs, err := seedCurrencies(svc)
	if err != nil {
		return err
	}

	chart := defaultChart()
	if chartFile != "" {
		chart, err = LoadChart(chartFile)
		if err != nil {
			return err
		}
	}

	defaultCurrencyID, ok := currencyIDs["USD"]
	if !ok {
		for _, id := range currencyIDs {
			defaultCurrencyID = id
			break
		}
	}

	for _, node := range chart {
		if err := createChartNode(svc, node, nil, "", defaultCurrencyID, currencyIDs); err != nil {
			return err
		}
	}
	return nil
}

// LoadChart reads a chart-of-accounts YAML file.
func LoadChart(path string) ([]ChartNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}

	var chart []ChartNode
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse chart file: %w", err)
	}
	return chart, nil
}

// seedCurrencies inserts any missing default currencies and returns the
// mnemonic to id map of all commodities.
func seedCurrencies(svc *ledger.Service) (map[string]int64, error) {
	existing, err := svc.ListCommodities()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(existing))
	for _, c := range existing {
		ids[c.Mnemonic] = c.ID
	}

	for _, spec := range defaultCurrencies {
		if _, ok := ids[spec.Mnemonic]; ok {
			continue
		}
		c, err := svc.CreateCommodity(models.CreateCommodityRequest{
			Mnemonic: spec.Mnemonic,
			Name:     spec.Name,
			Fraction: spec.Fraction,
		})
		if err != nil {
			return nil, err
		}
		ids[c.Mnemonic] = c.ID
	}
	return ids, nil
}

func createChartNode(svc *ledger.Service, node ChartNode, parentID *int64, inheritedType models.AccountType, defaultCurrencyID int64, currencyIDs map[string]int64) error {
	accountType := node.Type
	if accountType == "" {
		accountType = inheritedType
	}

	commodityID := defaultCurrencyID
	if node.Commodity != "" {
		id, ok := currencyIDs[node.Commodity]
		if !ok {
			return fmt.Errorf("chart references unknown commodity %q", node.Commodity)
		}
		commodityID = id
	}

	account, err := svc.CreateAccount(models.CreateAccountRequest{
		Name:        node.Name,
		AccountType: accountType,
		CommodityID: commodityID,
		ParentID:    parentID,
		Description: node.Description,
		Placeholder: node.Placeholder,
	})
	if err != nil {
		return fmt.Errorf("failed to seed account %q: %w", node.Name, err)
	}

	for _, child := range node.Children {
		if err := createChartNode(svc, child, &account.ID, accountType, commodityID, currencyIDs); err != nil {
			return err
		}
	}
	return nil
}
