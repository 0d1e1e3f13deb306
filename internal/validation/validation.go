// Package validation holds the form rules applied before any credential or
// catalog mutation. Every rule returns an ordered list of human-readable
// violations; an empty list means the input is acceptable.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PasswordSymbols is the fixed set a password must draw a symbol from.
const PasswordSymbols = "!@#$%^&*"

const (
	minPasswordLength = 12
	maxPasswordBytes  = 72
	minNameLength     = 2
)

var (
	emailPattern          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	classificationPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	yearPattern           = regexp.MustCompile(`^\d{4}$`)
	milesPattern          = regexp.MustCompile(`^\d+$`)
)

// Password checks strength and confirmation.
func Password(password, confirm string) []string {
	var errs []string

	if utf8.RuneCountInString(password) < minPasswordLength {
		errs = append(errs, "Password must be at least 12 characters long.")
	}
	if len(password) > maxPasswordBytes {
		errs = append(errs, "Password must be at most 72 bytes long.")
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	if !lower {
		errs = append(errs, "Password must contain at least 1 lowercase character.")
	}
	if !upper {
		errs = append(errs, "Password must contain at least 1 uppercase character.")
	}
	if !digit {
		errs = append(errs, "Password must contain at least 1 number.")
	}
	if !symbol {
		errs = append(errs, "Password must contain at least 1 special character (!@#$%^&*).")
	}
	if password != confirm {
		errs = append(errs, "Passwords do not match.")
	}

	return errs
}

// Email checks the local@domain.tld shape.
func Email(email string) []string {
	if !emailPattern.MatchString(email) {
		return []string{"Please provide a valid email address."}
	}
	return nil
}

// Profile checks the registration and account-update identity fields.
func Profile(first, last, email string) []string {
	var errs []string

	if utf8.RuneCountInString(strings.TrimSpace(first)) < minNameLength {
		errs = append(errs, "First name must be at least 2 characters long.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(last)) < minNameLength {
		errs = append(errs, "Last name must be at least 2 characters long.")
	}
	errs = append(errs, Email(email)...)

	return errs
}

// Registration combines the profile and password rules.
func Registration(first, last, email, password, confirm string) []string {
	return append(Profile(first, last, email), Password(password, confirm)...)
}

// Login checks the login form shape only; credentials are checked by the
// authentication flow.
func Login(email, password string) []string {
	errs := Email(email)
	if password == "" {
		errs = append(errs, "Please provide a password.")
	}
	return errs
}

// ClassificationName accepts letters and digits only.
func ClassificationName(name string) []string {
	if !classificationPattern.MatchString(name) {
		return []string{"Classification name may contain only letters and numbers, without spaces or special characters."}
	}
	return nil
}

// Feedback checks a client feedback message.
func Feedback(text string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 5 {
		return []string{"Message must be at least 5 characters."}
	}
	return nil
}

// VehicleForm is the raw add/edit inventory form.
type VehicleForm struct {
	ClassificationID string
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Thumbnail        string
	Price            string
	Miles            string
	Color            string
}

// Vehicle checks an inventory form.
func Vehicle(f VehicleForm) []string {
	var errs []string

	if id, err := strconv.ParseInt(f.ClassificationID, 10, 64); err != nil || id <= 0 {
		errs = append(errs, "Please choose a classification.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Make)) < 3 {
		errs = append(errs, "Make must be at least 3 characters long.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Model)) < 3 {
		errs = append(errs, "Model must be at least 3 characters long.")
	}
	if !yearPattern.MatchString(f.Year) {
		errs = append(errs, "Year must be a 4-digit number.")
	}
	if strings.TrimSpace(f.Description) == "" {
		errs = append(errs, "Description is required.")
	}
	if strings.TrimSpace(f.Image) == "" {
		errs = append(errs, "Image path is required.")
	}
	if strings.TrimSpace(f.Thumbnail) == "" {
		errs = append(errs, "Thumbnail path is required.")
	}
	if price, err := strconv.ParseFloat(f.Price, 64); err != nil || price < 0 {
		errs = append(errs, "Price must be a positive number.")
	}
	if !milesPattern.MatchString(f.Miles) {
		errs = append(errs, "Miles must be digits only.")
	}
	if strings.TrimSpace(f.Color) == "" {
		errs = append(errs, "Color is required.")
	}

	return errs
}
