package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDinnerBill reproduces the reference scenario: Pizza $20 split evenly
// between Alice and Bob, Soda $5 x2 all on Alice, subtotal derived from
// items, $2.40 tax, 20% tip.
func buildDinnerBill(t *testing.T) (*Engine, Person, Person) {
	t.Helper()
	e := newTestEngine()
	alice := addPerson(t, e, "Alice")
	bob := addPerson(t, e, "Bob")

	_, err := e.SaveItem(ItemDraft{
		Name:           "Pizza",
		UnitPrice:      20.00,
		Quantity:       1,
		SplitMethod:    SplitEven,
		AssignedPeople: []PersonID{alice.ID, bob.ID},
	})
	require.NoError(t, err)

	_, err = e.SaveItem(ItemDraft{
		Name:           "Soda",
		UnitPrice:      5.00,
		Quantity:       2,
		SplitMethod:    SplitPercentage,
		AssignedPeople: []PersonID{alice.ID},
		Percentages:    map[PersonID]float64{alice.ID: 100},
	})
	require.NoError(t, err)

	require.NoError(t, e.DeriveSubtotalFromItems())
	require.NoError(t, e.SetBillField(FieldTax, 2.40))
	e.SetTipPercentage(20)

	return e, alice, bob
}

func TestDinnerBillScenario(t *testing.T) {
	e, alice, bob := buildDinnerBill(t)

	assert.InDelta(t, 30.00, e.Subtotal(), 1e-9)
	assert.InDelta(t, 6.00, e.Tip(), 1e-9)

	// Alice: 10 (half the pizza) + 10 (soda) = 20, ratio 20/30.
	// Alice owes 20 + (20/30)(2.40+6.00) = 25.60.
	assert.InDelta(t, 25.60, e.PersonTotal(alice.ID), 1e-9)

	// Bob: 10, ratio 10/30. Bob owes 10 + (10/30)(8.40) = 12.80.
	assert.InDelta(t, 12.80, e.PersonTotal(bob.ID), 1e-9)

	summary := e.Summary()
	assert.InDelta(t, 38.40, summary.GrandTotal, 1e-9)
	assert.InDelta(t, summary.GrandTotal, e.PersonTotal(alice.ID)+e.PersonTotal(bob.ID), 1e-9)

	assert.InDelta(t, 19.20, e.PerPersonAverage(), 1e-9)
}

func TestApportionmentConservation(t *testing.T) {
	// When every item has at least one assigned person, person totals sum
	// exactly to the grand total.
	e := newTestEngine()
	a := addPerson(t, e, "A")
	b := addPerson(t, e, "B")
	c := addPerson(t, e, "C")

	_, err := e.SaveItem(ItemDraft{
		Name: "Apps", UnitPrice: 13.37, Quantity: 3,
		SplitMethod:    SplitEven,
		AssignedPeople: []PersonID{a.ID, b.ID, c.ID},
	})
	require.NoError(t, err)
	_, err = e.SaveItem(ItemDraft{
		Name: "Wine", UnitPrice: 27.50, Quantity: 1,
		SplitMethod:    SplitPercentage,
		AssignedPeople: []PersonID{a.ID, b.ID},
		Percentages:    map[PersonID]float64{a.ID: 70, b.ID: 30},
	})
	require.NoError(t, err)

	require.NoError(t, e.DeriveSubtotalFromItems())
	require.NoError(t, e.SetBillField(FieldTax, 5.55))
	require.NoError(t, e.SetBillField(FieldServiceFee, 3.00))
	e.SetTipAmount(11.11)

	var sum float64
	for _, p := range e.People() {
		sum += e.PersonTotal(p.ID)
	}
	assert.InDelta(t, e.Summary().GrandTotal, sum, 1e-9)
}

func TestOrphanedItemDilutesRatio(t *testing.T) {
	e := newTestEngine()
	alice := addPerson(t, e, "Alice")
	ghost := addPerson(t, e, "Ghost")

	_, err := e.SaveItem(ItemDraft{
		Name: "Salad", UnitPrice: 10.00, Quantity: 1,
		AssignedPeople: []PersonID{alice.ID},
	})
	require.NoError(t, err)
	_, err = e.SaveItem(ItemDraft{
		Name: "Dessert", UnitPrice: 10.00, Quantity: 1,
		AssignedPeople: []PersonID{ghost.ID},
	})
	require.NoError(t, err)

	require.NoError(t, e.SetBillField(FieldTax, 4.00))
	e.RemovePerson(ghost.ID)

	// Dessert is orphaned: excluded from everyone's item subtotal but it
	// still dilutes the apportionment ratio, so Alice pays tax on half.
	assert.InDelta(t, 10.00+2.00, e.PersonTotal(alice.ID), 1e-9)
}

func TestPersonTotal_EmptyBill(t *testing.T) {
	e := newTestEngine()
	alice := addPerson(t, e, "Alice")
	require.NoError(t, e.SetBillField(FieldTax, 5.00))

	// No items: ratio is 0 and the person owes exactly their (zero) item
	// subtotal, never a share of the extras.
	assert.Equal(t, 0.0, e.PersonTotal(alice.ID))
}

func TestPerPersonAverage_NoPeople(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SetBillField(FieldSubtotal, 40))
	assert.Equal(t, 0.0, e.PerPersonAverage())
}

func TestQueriesAreIdempotent(t *testing.T) {
	e, alice, _ := buildDinnerBill(t)

	first := e.Summary()
	second := e.Summary()
	assert.Equal(t, first, second)

	assert.Equal(t, e.PersonTotal(alice.ID), e.PersonTotal(alice.ID))
	assert.Equal(t, e.DetailedBreakdown(), e.DetailedBreakdown())
	assert.Equal(t, e.Export(), e.Export())
}

func TestDetailedBreakdown(t *testing.T) {
	e, alice, bob := buildDinnerBill(t)

	breakdown := e.DetailedBreakdown()
	require.Len(t, breakdown, 2)

	// People order is preserved.
	assert.Equal(t, alice.ID, breakdown[0].PersonID)
	assert.Equal(t, bob.ID, breakdown[1].PersonID)

	aliceBD := breakdown[0]
	require.Len(t, aliceBD.Items, 2)
	assert.Equal(t, "Pizza", aliceBD.Items[0].Name)
	assert.Equal(t, 50.0, aliceBD.Items[0].Percentage)
	assert.Equal(t, 10.00, aliceBD.Items[0].Amount)
	assert.Equal(t, "Soda", aliceBD.Items[1].Name)
	assert.Equal(t, 100.0, aliceBD.Items[1].Percentage)
	assert.Equal(t, 10.00, aliceBD.Items[1].Amount)

	assert.Equal(t, 20.00, aliceBD.Subtotal)
	assert.Equal(t, 1.60, aliceBD.Tax)
	assert.Equal(t, 4.00, aliceBD.Tip)
	assert.Equal(t, 0.00, aliceBD.ServiceFee)
	assert.Equal(t, 25.60, aliceBD.GrandTotal)

	bobBD := breakdown[1]
	require.Len(t, bobBD.Items, 1)
	assert.Equal(t, 12.80, bobBD.GrandTotal)

	// The breakdown grand total is the rounded PersonTotal; same code
	// path, same figures.
	assert.InDelta(t, e.PersonTotal(alice.ID), aliceBD.GrandTotal, 0.005)
}

func TestExportMatchesBreakdown(t *testing.T) {
	e, _, _ := buildDinnerBill(t)

	export := e.Export()
	breakdown := e.DetailedBreakdown()

	require.Len(t, export.People, len(breakdown))
	for i, pb := range breakdown {
		assert.Equal(t, pb.Name, export.People[i].Name)
		assert.Equal(t, pb.GrandTotal, export.People[i].Total)
		require.Len(t, export.People[i].Items, len(pb.Items))
		for j, line := range pb.Items {
			assert.Equal(t, line.Name, export.People[i].Items[j].Name)
			assert.Equal(t, line.Percentage, export.People[i].Items[j].Percentage)
			assert.Equal(t, line.Amount, export.People[i].Items[j].Amount)
		}
	}

	assert.Equal(t, 30.00, export.BillSummary.Subtotal)
	assert.Equal(t, 2.40, export.BillSummary.Tax)
	assert.Equal(t, 6.00, export.BillSummary.Tip)
	assert.Equal(t, 38.40, export.BillSummary.GrandTotal)
}
