package finance

import (
	"errors"
	"math"
	"testing"
)

func TestDocumentTotals(t *testing.T) {
	cases := []struct {
		name     string
		items    []LineItem
		taxRate  float64
		subtotal float64
		tax      float64
		total    float64
	}{
		{
			name: "website project",
			items: []LineItem{
				{Quantity: 1, Price: 1500, Amount: 1500},
				{Quantity: 1, Price: 1000, Amount: 1000},
			},
			taxRate:  0.20,
			subtotal: 2500, tax: 500, total: 3000,
		},
		{name: "empty list", items: nil, taxRate: 0.20},
		{
			name:     "zero tax rate",
			items:    []LineItem{{Quantity: 2, Price: 50, Amount: 100}},
			taxRate:  0,
			subtotal: 100, tax: 0, total: 100,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DocumentTotals(tc.items, tc.taxRate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Subtotal != tc.subtotal || got.TaxAmount != tc.tax || got.Total != tc.total {
				t.Fatalf("got %+v, want subtotal=%v tax=%v total=%v", got, tc.subtotal, tc.tax, tc.total)
			}
		})
	}
}

func TestDocumentTotalsOrderIrrelevant(t *testing.T) {
	items := []LineItem{
		{Amount: 12.5}, {Amount: 700}, {Amount: 0.25}, {Amount: 99},
	}
	reversed := []LineItem{items[3], items[2], items[1], items[0]}
	a, err := DocumentTotals(items, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := DocumentTotals(reversed, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Subtotal != b.Subtotal || a.Total != b.Total {
		t.Fatalf("order changed the sum: %+v vs %+v", a, b)
	}
}

func TestInvoiceTotalsBalance(t *testing.T) {
	items := []LineItem{{Quantity: 1, Price: 5000, Amount: 5000}}
	got, err := InvoiceTotals(items, 0.20, 3000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Total != 6000 || got.Balance != 3000 {
		t.Fatalf("got %+v, want total=6000 balance=3000", got)
	}
}

func TestInvoiceTotalsOverpaymentNotClamped(t *testing.T) {
	items := []LineItem{{Quantity: 1, Price: 100, Amount: 100}}
	got, err := InvoiceTotals(items, 0, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Balance != -50 {
		t.Fatalf("expected balance -50 on overpayment, got %v", got.Balance)
	}
}

func TestApplyItemEdit(t *testing.T) {
	item := LineItem{Description: "Design", Quantity: 1, Price: 0, Amount: 0}

	edited, err := ApplyItemEdit(item, FieldPrice, "1500")
	if err != nil {
		t.Fatalf("price edit: %v", err)
	}
	if edited.Amount != 1500 {
		t.Fatalf("expected amount 1500 after price edit, got %v", edited.Amount)
	}
	edited, err = ApplyItemEdit(edited, FieldQuantity, "3")
	if err != nil {
		t.Fatalf("quantity edit: %v", err)
	}
	if edited.Amount != 4500 {
		t.Fatalf("expected amount 4500, got %v", edited.Amount)
	}
	edited, err = ApplyItemEdit(edited, FieldDescription, "Frontend Development")
	if err != nil {
		t.Fatalf("description edit: %v", err)
	}
	if edited.Amount != 4500 || edited.Description != "Frontend Development" {
		t.Fatalf("description edit must not touch amount: %+v", edited)
	}
	// input never mutated
	if item.Amount != 0 || item.Price != 0 {
		t.Fatalf("input item mutated: %+v", item)
	}
}

func TestApplyItemEditRejectsBadNumbers(t *testing.T) {
	item := LineItem{Quantity: 1}
	for _, bad := range []string{"", "abc", "NaN", "Inf", "-Inf", "1.2.3"} {
		if _, err := ApplyItemEdit(item, FieldQuantity, bad); err == nil {
			t.Fatalf("expected error for quantity %q", bad)
		} else {
			var cerr *ComputationError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ComputationError for %q, got %T", bad, err)
			}
		}
	}
}

func TestAddItem(t *testing.T) {
	items := []LineItem{{Description: "A", Quantity: 2, Price: 10, Amount: 20}}
	out := AddItem(items)
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	last := out[1]
	if last.Quantity != 1 || last.Price != 0 || last.Amount != 0 {
		t.Fatalf("new row should be qty=1 price=0 amount=0, got %+v", last)
	}
	if len(items) != 1 {
		t.Fatalf("input slice mutated")
	}
}

func TestRemoveItem(t *testing.T) {
	single := []LineItem{{Description: "only"}}
	if out := RemoveItem(single, 0); len(out) != 1 || out[0].Description != "only" {
		t.Fatalf("removing the last remaining item must be a no-op, got %+v", out)
	}

	items := []LineItem{{Description: "a"}, {Description: "b"}, {Description: "c"}}
	out := RemoveItem(items, 1)
	if len(out) != 2 || out[0].Description != "a" || out[1].Description != "c" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if len(items) != 3 {
		t.Fatalf("input slice mutated")
	}
	if out := RemoveItem(items, 5); len(out) != 3 {
		t.Fatalf("out-of-range index should be a no-op")
	}
	if out := RemoveItem(items, -1); len(out) != 3 {
		t.Fatalf("negative index should be a no-op")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"2.50", 2.5, true},
		{" 3.75 ", 3.75, true},
		{"-1", -1, true}, // sign policy is the caller's concern
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount("amount", tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q: expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestTotalsRejectNonFinite(t *testing.T) {
	if _, err := DocumentTotals([]LineItem{{Amount: 10}}, math.NaN()); err == nil {
		t.Fatal("expected error for NaN tax rate")
	}
	if _, err := InvoiceTotals([]LineItem{{Amount: 10}}, 0.2, math.NaN()); err == nil {
		t.Fatal("expected error for NaN amount paid")
	}
	if _, err := DocumentTotals([]LineItem{{Amount: math.Inf(1)}}, 0.2); err == nil {
		t.Fatal("expected error for infinite item amount")
	}
}
