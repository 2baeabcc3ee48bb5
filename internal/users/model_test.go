package users

import (
	"errors"
	"testing"
)

func TestParseUserID_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"blank string", "", ErrUserIDBlank},
		{"whitespace only", "  ", ErrUserIDBlank},
		{"not a uuid", "notAUUID", ErrUserIDMalformed},
		{"invalid character", "9766f4af-f2de-4f19-8326-9f856e829d4h", ErrUserIDMalformed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseUserID(tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParseUserID(%q) err = %v, want %v", tc.input, err, tc.want)
			}
		})
	}
}

func TestParseUserID_Valid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple string", "9766f4af-f2de-4f19-8326-9f856e829d46", "9766f4af-f2de-4f19-8326-9f856e829d46"},
		{"left-padded", "  9766f4af-f2de-4f19-8326-9f856e829d46", "9766f4af-f2de-4f19-8326-9f856e829d46"},
		{"right-padded", "9766f4af-f2de-4f19-8326-9f856e829d46  ", "9766f4af-f2de-4f19-8326-9f856e829d46"},
		{"both-padded", "  9766f4af-f2de-4f19-8326-9f856e829d46  ", "9766f4af-f2de-4f19-8326-9f856e829d46"},
		{"no hyphens", "9766f4aff2de4f1983269f856e829d46", "9766f4af-f2de-4f19-8326-9f856e829d46"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseUserID(tc.input)
			if err != nil {
				t.Fatalf("ParseUserID(%q) err = %v", tc.input, err)
			}
			if id.String() != tc.want {
				t.Fatalf("ParseUserID(%q) = %q, want %q", tc.input, id.String(), tc.want)
			}
		})
	}
}

func TestParseEmail(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "  "} {
		if _, err := ParseEmail(input); !errors.Is(err, ErrEmailBlank) {
			t.Fatalf("ParseEmail(%q) err = %v, want ErrEmailBlank", input, err)
		}
	}

	for _, input := range []string{"test@example.com", "  test@example.com", "test@example.com  "} {
		email, err := ParseEmail(input)
		if err != nil {
			t.Fatalf("ParseEmail(%q) err = %v", input, err)
		}
		if email != "test@example.com" {
			t.Fatalf("ParseEmail(%q) = %q", input, email)
		}
	}
}
