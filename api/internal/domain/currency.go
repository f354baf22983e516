package domain

type Currency uint8

const (
	CURRENCY_NONE Currency = iota // only for init
	CURRENCY_BRL
	CURRENCY_USD
	CURRENCY_EUR
)

var Currencies = [...]string{"none", "BRL", "USD", "EUR"}

func (c Currency) ToString() string {
	return Currencies[c]
}

func (c Currency) IsNone() bool {
	return c == 0
}

func StrToCurrency(s string) Currency {
	for i, currencyName := range Currencies {
		if s == currencyName {
			return Currency(i)
		}
	}
	return CURRENCY_NONE
}
