package batch

import (
	"math/rand"
	"testing"

	"fjacquet/expense-report/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	entries := []models.LabeledAmount{
		{Label: "EATING_OUT", Amount: decimal.NewFromInt(100)},
		{Label: "EATING_OUT", Amount: decimal.NewFromInt(50)},
		{Label: "VACATION", Amount: decimal.NewFromInt(200)},
	}

	totals := Aggregate(entries)

	assert.Len(t, totals, 2)
	assert.True(t, decimal.NewFromInt(150).Equal(totals["EATING_OUT"]))
	assert.True(t, decimal.NewFromInt(200).Equal(totals["VACATION"]))
	_, present := totals["GROCERIES"]
	assert.False(t, present, "unseen categories must be absent")
}

func TestAggregate_OrderIndependent(t *testing.T) {
	var entries []models.LabeledAmount
	for i := 0; i < 200; i++ {
		entries = append(entries, models.LabeledAmount{
			Label:  []string{"A", "B", "C", models.NoCategory}[i%4],
			Amount: decimal.New(int64(i*13+7), -2),
		})
	}
	expected := Aggregate(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]models.LabeledAmount(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.True(t, expected.Equal(Aggregate(shuffled)))
	}
}

func TestAggregate_ExactSums(t *testing.T) {
	entries := []models.LabeledAmount{
		{Label: "X", Amount: decimal.NewFromFloat(0.1)},
		{Label: "X", Amount: decimal.NewFromFloat(0.2)},
		{Label: "Y", Amount: decimal.NewFromFloat(-0.3)},
	}
	totals := Aggregate(entries)
	assert.Equal(t, "0.3", totals["X"].String())
	assert.True(t, totals.Sum().IsZero())
}

func TestAggregate_FreshMapEachCall(t *testing.T) {
	entries := []models.LabeledAmount{{Label: "X", Amount: decimal.NewFromInt(1)}}
	first := Aggregate(entries)
	first["X"] = decimal.NewFromInt(99)

	second := Aggregate(entries)
	assert.True(t, decimal.NewFromInt(1).Equal(second["X"]))
}
