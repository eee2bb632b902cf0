package classification

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

type ClassifierTestSuite struct {
	suite.Suite
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}

func unclassifiedTx(userID int64, mccCode string) models.Transaction {
	return models.Transaction{
		UserID:  userID,
		Amount:  decimal.NewFromInt(10),
		MCCCode: mccCode,
		Date:    time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func referenceTable(columns []string, rows ...[]string) *models.ReferenceTable {
	return &models.ReferenceTable{Columns: columns, Rows: rows}
}

func (s *ClassifierTestSuite) TestClassify_JoinsOnMCCCode() {
	ref := referenceTable(
		[]string{"mcc_code", "name", "status"},
		[]string{"4111", "Public transport", "green"},
		[]string{"5542", "Gas station", "not green"},
	)
	transactions := []models.Transaction{
		unclassifiedTx(1, "4111"),
		unclassifiedTx(1, "5542"),
	}

	classified, err := Classify(transactions, ref)
	s.Require().NoError(err)
	s.Require().Len(classified, 2)
	s.Equal(models.StatusGreen, classified[0].Status)
	s.Equal(models.StatusNotGreen, classified[1].Status)

	// The input slice stays untouched.
	s.False(transactions[0].IsClassified())
}

func (s *ClassifierTestSuite) TestClassify_UnknownCodeDefaultsToNotGreen() {
	ref := referenceTable(
		[]string{"mcc_code", "status"},
		[]string{"4111", "green"},
	)

	classified, stats, err := ClassifyDetailed([]models.Transaction{
		unclassifiedTx(1, "4111"),
		unclassifiedTx(1, "9999"),
	}, ref)

	s.Require().NoError(err)
	s.Equal(models.StatusNotGreen, classified[1].Status)
	s.Equal(2, stats.Total)
	s.Equal(1, stats.Unmatched)
}

func (s *ClassifierTestSuite) TestClassify_AlreadyClassifiedPassesThrough() {
	transactions := []models.Transaction{
		{UserID: 1, Amount: decimal.NewFromInt(5), MCCCode: "4111",
			Status: models.StatusGreen,
			Date:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	// No reference needed when every row already carries a status.
	classified, err := Classify(transactions, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusGreen, classified[0].Status)
}

func (s *ClassifierTestSuite) TestClassify_PartiallyClassifiedResolvesRemainder() {
	ref := referenceTable(
		[]string{"mcc_code", "status"},
		[]string{"5542", "not green"},
	)
	transactions := []models.Transaction{
		{UserID: 1, Amount: decimal.NewFromInt(5), MCCCode: "4111",
			Status: models.StatusGreen,
			Date:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		unclassifiedTx(2, "5542"),
	}

	classified, err := Classify(transactions, ref)
	s.Require().NoError(err)
	s.Equal(models.StatusGreen, classified[0].Status)
	s.Equal(models.StatusNotGreen, classified[1].Status)
}

func (s *ClassifierTestSuite) TestClassify_ColumnAliases() {
	tests := []struct {
		name       string
		columns    []string
		row        []string
		wantStatus models.GreenStatus
	}{
		{"canonical headers", []string{"mcc_code", "status"}, []string{"4111", "green"}, models.StatusGreen},
		{"long code alias", []string{"merchant_category_code", "status"}, []string{"4111", "green"}, models.StatusGreen},
		{"short code alias", []string{"mcc", "green_status"}, []string{"4111", "green"}, models.StatusGreen},
		{"mixed case headers", []string{"MCC_Code", "Status"}, []string{"4111", "Green"}, models.StatusGreen},
		{"is_green true", []string{"mcc_code", "is_green"}, []string{"4111", "true"}, models.StatusGreen},
		{"is_green numeric", []string{"mcc_code", "is_green"}, []string{"4111", "1"}, models.StatusGreen},
		{"is_green false", []string{"mcc_code", "is_green"}, []string{"4111", "false"}, models.StatusNotGreen},
		{"unrecognized status word", []string{"mcc_code", "status"}, []string{"4111", "emerald"}, models.StatusNotGreen},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			classified, err := Classify(
				[]models.Transaction{unclassifiedTx(1, "4111")},
				referenceTable(tc.columns, tc.row),
			)
			s.Require().NoError(err)
			s.Equal(tc.wantStatus, classified[0].Status)
		})
	}
}

func (s *ClassifierTestSuite) TestClassify_MissingStatusColumnDefaultsAll() {
	ref := referenceTable(
		[]string{"mcc_code", "name"},
		[]string{"4111", "Public transport"},
	)

	classified, err := Classify([]models.Transaction{unclassifiedTx(1, "4111")}, ref)
	s.Require().NoError(err)
	s.Equal(models.StatusNotGreen, classified[0].Status)
}

func (s *ClassifierTestSuite) TestClassify_MissingCodeColumnFails() {
	ref := referenceTable(
		[]string{"name", "status"},
		[]string{"Public transport", "green"},
	)

	_, err := Classify([]models.Transaction{unclassifiedTx(1, "4111")}, ref)
	s.Require().Error(err)

	var schemaErr *SchemaError
	s.ErrorAs(err, &schemaErr)
	s.Contains(schemaErr.Error(), "merchant category code")
}

func (s *ClassifierTestSuite) TestClassify_NilReferenceFails() {
	_, err := Classify([]models.Transaction{unclassifiedTx(1, "4111")}, nil)
	s.Require().Error(err)
}

func (s *ClassifierTestSuite) TestClassify_Idempotent() {
	ref := referenceTable(
		[]string{"mcc_code", "status"},
		[]string{"4111", "green"},
		[]string{"5542", "not green"},
	)
	transactions := []models.Transaction{
		unclassifiedTx(1, "4111"),
		unclassifiedTx(2, "5542"),
	}

	once, err := Classify(transactions, ref)
	s.Require().NoError(err)
	twice, err := Classify(once, ref)
	s.Require().NoError(err)

	s.Equal(once, twice)
}
