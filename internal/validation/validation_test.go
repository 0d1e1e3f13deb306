package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		confirm  string
		want     []string
	}{
		{
			name:     "Valid",
			password: "GoodPass123!",
			confirm:  "GoodPass123!",
			want:     nil,
		},
		{
			name:     "Short",
			password: "short1!",
			confirm:  "short1!",
			want: []string{
				"Password must be at least 12 characters long.",
				"Password must contain at least 1 uppercase character.",
			},
		},
		{
			name:     "Mismatch",
			password: "GoodPass123!",
			confirm:  "GoodPass123?",
			want:     []string{"Passwords do not match."},
		},
		{
			name:     "Symbol outside the set",
			password: "GoodPass1234?",
			confirm:  "GoodPass1234?",
			want:     []string{"Password must contain at least 1 special character (!@#$%^&*)."},
		},
		{
			name:     "Empty",
			password: "",
			confirm:  "",
			want: []string{
				"Password must be at least 12 characters long.",
				"Password must contain at least 1 lowercase character.",
				"Password must contain at least 1 uppercase character.",
				"Password must contain at least 1 number.",
				"Password must contain at least 1 special character (!@#$%^&*).",
			},
		},
		{
			name:     "Too long for bcrypt",
			password: "Aa1!" + strings.Repeat("x", 70),
			confirm:  "Aa1!" + strings.Repeat("x", 70),
			want:     []string{"Password must be at most 72 bytes long."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Password(tt.password, tt.confirm))
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"a@b.com", "first.last+tag@sub.example.org"} {
		require.Empty(t, Email(ok), ok)
	}
	for _, bad := range []string{"", "a@b", "@b.com", "a b@c.com", "a@@b.com", "plain"} {
		require.Equal(t, []string{"Please provide a valid email address."}, Email(bad), bad)
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()

	require.Empty(t, Profile("Ab", "Cd", "a@b.com"))
	require.Equal(t, []string{
		"First name must be at least 2 characters long.",
		"Last name must be at least 2 characters long.",
		"Please provide a valid email address.",
	}, Profile(" A ", "", "nope"))
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	require.Empty(t, Registration("Basic", "Client", "a@b.com", "GoodPass123!", "GoodPass123!"))
	require.Equal(t, []string{
		"First name must be at least 2 characters long.",
		"Passwords do not match.",
	}, Registration("B", "Client", "a@b.com", "GoodPass123!", "other"))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	require.Empty(t, Login("a@b.com", "x"))
	require.Equal(t, []string{"Please provide a valid email address.", "Please provide a password."}, Login("a", ""))
}

func TestClassificationName(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"SUV", "Sedan2"} {
		require.Empty(t, ClassificationName(ok), ok)
	}
	for _, bad := range []string{"", "Sport Utility", "SUV!", "Trucks-Big", "Café"} {
		require.Len(t, ClassificationName(bad), 1, bad)
	}
}

func TestFeedback(t *testing.T) {
	t.Parallel()

	require.Empty(t, Feedback("Great service"))
	require.Len(t, Feedback("  hi  "), 1)
}

func TestVehicle(t *testing.T) {
	t.Parallel()

	good := VehicleForm{
		ClassificationID: "2",
		Make:             "Chevy",
		Model:            "Camaro",
		Year:             "2018",
		Description:      "Fast.",
		Image:            "/images/vehicles/camaro.jpg",
		Thumbnail:        "/images/vehicles/camaro-tn.jpg",
		Price:            "25000",
		Miles:            "101222",
		Color:            "Silver",
	}
	require.Empty(t, Vehicle(good))

	bad := good
	bad.ClassificationID = ""
	bad.Year = "18"
	bad.Price = "-1"
	bad.Miles = "10,000"
	require.Equal(t, []string{
		"Please choose a classification.",
		"Year must be a 4-digit number.",
		"Price must be a positive number.",
		"Miles must be digits only.",
	}, Vehicle(bad))
}
