package view

import (
	"html/template"
	"strconv"
	"strings"

	"dealership/internal/models"
)

var funcs = template.FuncMap{
	"usd":       usd,
	"thousands": thousands,
	"isStaff": func(c *models.Claims) bool {
		return c != nil && c.HasRole(models.AtLeast(models.RoleEmployee)...)
	},
	"isAdmin": func(c *models.Claims) bool {
		return c != nil && c.Role == models.RoleAdmin
	},
	"isClient": func(c *models.Claims) bool {
		return c != nil && c.Role == models.RoleClient
	},
	"selected": func(id int64, value string) bool {
		return value != "" && strconv.FormatInt(id, 10) == value
	},
}

// usd formats a price as $12,345.67, dropping zero cents.
func usd(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, cents, _ := strings.Cut(s, ".")

	out := "$" + groupDigits(whole)
	if cents != "00" {
		out += "." + cents
	}
	if neg {
		out = "-" + out
	}
	return out
}

// thousands formats an integer with comma separators.
func thousands(n int) string {
	if n < 0 {
		return "-" + groupDigits(strconv.Itoa(-n))
	}
	return groupDigits(strconv.Itoa(n))
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
