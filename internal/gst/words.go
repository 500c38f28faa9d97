package gst

import (
	"fmt"
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}

func threeDigitWords(n int64) string {
	if n < 100 {
		return twoDigitWords(n)
	}
	s := onesWords[n/100] + " Hundred"
	if n%100 != 0 {
		s += " " + twoDigitWords(n%100)
	}
	return s
}

// indianWords renders n using the Indian grouping: crore, lakh,
// thousand, then up to three trailing digits. No "and" joiners are
// inserted within the number.
func indianWords(n int64) string {
	var parts []string
	if n >= 1e7 {
		parts = append(parts, indianWords(n/1e7)+" Crore")
		n %= 1e7
	}
	if n >= 1e5 {
		parts = append(parts, twoDigitWords(n/1e5)+" Lakh")
		n %= 1e5
	}
	if n >= 1000 {
		parts = append(parts, twoDigitWords(n/1000)+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, threeDigitWords(n))
	}
	return strings.Join(parts, " ")
}

// NumberToWords spells an amount in rupees and paise, e.g. 1234.50
// becomes "One Thousand Two Hundred Thirty Four Rupees and Fifty Paise
// Only". Paise come from rounding the fractional part to two places;
// negative and non-finite amounts render as zero.
func NumberToWords(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		amount = 0
	}

	rupees := int64(amount)
	paise := int64(math.Round((amount - float64(rupees)) * 100))
	if paise >= 100 {
		rupees++
		paise -= 100
	}

	if rupees == 0 && paise == 0 {
		return "Zero Rupees Only"
	}

	var b strings.Builder
	if rupees > 0 {
		b.WriteString(indianWords(rupees))
		b.WriteString(" Rupees")
	}
	if paise > 0 {
		if rupees > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(twoDigitWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// FormatIndianCurrency renders an amount with the rupee sign, Indian
// digit grouping and two decimal places, e.g. 123456.78 becomes
// "₹1,23,456.78".
func FormatIndianCurrency(amount float64) string {
	return FormatIndianAmount(amount, 2)
}

// FormatIndianAmount is FormatIndianCurrency with a caller-chosen
// number of decimal places. Non-finite amounts render as zero;
// negative precision is treated as zero decimals.
func FormatIndianAmount(amount float64, decimals int) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if decimals < 0 {
		decimals = 0
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := fmt.Sprintf("%.*f", decimals, amount)
	whole, frac := s, ""
	if decimals > 0 {
		whole = s[:len(s)-decimals-1]
		frac = s[len(s)-decimals:]
	}

	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		whole = strings.Join(groups, ",") + "," + tail
	}

	if frac == "" {
		return sign + "₹" + whole
	}
	return sign + "₹" + whole + "." + frac
}
