package pricedash

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	got := EUR(200).Scale(decimal.NewFromFloat(1.5)).Add(EUR(100))
	if !got.Equal(EUR(400)) {
		t.Errorf("200*1.5+100 = %v want %v", got, EUR(400))
	}
	if r := EUR(300).Ratio(EUR(200)); !r.Equal(decimal.NewFromFloat(1.5)) {
		t.Errorf("300/200 = %v want 1.5", r)
	}
	if got := M(0, "").Add(EUR(1)); got.Currency() != "EUR" {
		t.Errorf("the empty currency must be weak, got %q", got.Currency())
	}
}

func TestMoneyString(t *testing.T) {
	if s := EUR(200).String(); !strings.Contains(s, "200.00") {
		t.Errorf("EUR(200).String() = %q want it to contain 200.00", s)
	}
	if s := EUR(0).SignedString(); s != "-" {
		t.Errorf("EUR(0).SignedString() = %q want -", s)
	}
	if s := EUR(12.5).SignedString(); !strings.HasPrefix(s, "+") {
		t.Errorf("EUR(12.5).SignedString() = %q want a + prefix", s)
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding EUR and USD must panic")
		}
	}()
	EUR(1).Add(M(1, "USD"))
}

func TestValidCurrency(t *testing.T) {
	if !ValidCurrency("EUR") || ValidCurrency("XYZW") {
		t.Errorf("ValidCurrency() does not recognize ISO codes")
	}
}
