package services

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/gulnaramus-data/greenfintech/internal/models"
)

// demoMerchant pairs a spending category with its MCC code and the green
// status the reference table will report for that code.
type demoMerchant struct {
	category string
	mccCode  string
	green    bool
	minSpend float64
	maxSpend float64
}

type demoGenerator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
	pool  []demoMerchant
}

// NewDemoGenerator creates a deterministic demo data generator. The same
// seed always produces the same dataset.
func NewDemoGenerator(seed int64) DemoGeneratorInterface {
	return &demoGenerator{
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(uint64(seed)),
		pool:  demoMerchantPool(),
	}
}

func demoMerchantPool() []demoMerchant {
	return []demoMerchant{
		// Green categories
		{"Public transport", "4111", true, 1.50, 60.00},
		{"Bicycle rental", "5940", true, 3.00, 25.00},
		{"Farmers market", "5499", true, 8.00, 90.00},
		{"Secondhand store", "5931", true, 5.00, 70.00},
		{"EV charging", "5552", true, 6.00, 45.00},
		{"Organic grocery", "5411", true, 12.00, 160.00},
		{"Book store", "5942", true, 7.00, 55.00},

		// Not-green categories
		{"Gas station", "5542", false, 25.00, 95.00},
		{"Auto parts and service", "7538", false, 40.00, 450.00},
		{"Coffee shop", "5814", false, 3.00, 18.00},
		{"Restaurant", "5812", false, 15.00, 130.00},
		{"Fast food", "5814", false, 6.00, 30.00},
		{"Department store", "5311", false, 20.00, 380.00},
		{"Airline tickets", "3000", false, 120.00, 900.00},
		{"Electronics", "5732", false, 30.00, 650.00},
	}
}

// Transactions produces users*perUser unclassified transactions spread
// uniformly over [from, to). Statuses are resolved later by the classifier
// against the generated reference table.
func (g *demoGenerator) Transactions(users, perUser int, from, to time.Time) []models.Transaction {
	span := to.Sub(from)
	if span <= 0 {
		span = 24 * time.Hour
	}

	transactions := make([]models.Transaction, 0, users*perUser)
	for userID := int64(1); userID <= int64(users); userID++ {
		// Per-user bias so the fleet has a realistic score spread instead
		// of everyone converging to the pool average.
		greenBias := g.rng.Float64() * 0.6

		for i := 0; i < perUser; i++ {
			merchant := g.pickMerchant(greenBias)
			amount := merchant.minSpend + g.rng.Float64()*(merchant.maxSpend-merchant.minSpend)
			date := from.Add(time.Duration(g.rng.Int63n(int64(span))))

			transactions = append(transactions, models.Transaction{
				UserID:   userID,
				Amount:   decimal.NewFromFloat(amount).Round(2),
				Category: merchant.category,
				MCCCode:  merchant.mccCode,
				Date:     date,
			})
		}
	}
	return transactions
}

func (g *demoGenerator) pickMerchant(greenBias float64) demoMerchant {
	if g.rng.Float64() < greenBias {
		return g.pickByStatus(true)
	}
	return g.pickByStatus(false)
}

func (g *demoGenerator) pickByStatus(green bool) demoMerchant {
	candidates := make([]demoMerchant, 0, len(g.pool))
	for _, m := range g.pool {
		if m.green == green {
			candidates = append(candidates, m)
		}
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// Reference builds the MCC reference table matching the merchant pool,
// with a generated description column like real MCC exports carry.
func (g *demoGenerator) Reference() *models.ReferenceTable {
	seen := make(map[string]bool)
	rows := make([][]string, 0, len(g.pool))
	for _, m := range g.pool {
		if seen[m.mccCode] {
			continue
		}
		seen[m.mccCode] = true

		status := string(models.StatusNotGreen)
		if m.green {
			status = string(models.StatusGreen)
		}
		rows = append(rows, []string{m.mccCode, m.category, g.faker.Sentence(6), status})
	}

	return &models.ReferenceTable{
		Columns: []string{"mcc_code", "name", "description", "status"},
		Rows:    rows,
	}
}
