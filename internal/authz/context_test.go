package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerate_IsSuccessful(t *testing.T) {
	t.Parallel()

	sut := NewContextService(5 * 24 * time.Hour)

	result := sut.Generate(User{UserID: "c2a85f7d-5a78-44d0-90fc-31ed132845da"})

	require.Equal(t, result.Issued.Add(5*24*time.Hour), result.Expires)
	require.Equal(t, result.Issued, result.Issued.Truncate(time.Second))

	user, ok := result.Principal.(User)
	require.True(t, ok)
	require.Equal(t, "c2a85f7d-5a78-44d0-90fc-31ed132845da", user.UserID)
}

func TestGenerate_IDsAreUniquePerIssuance(t *testing.T) {
	t.Parallel()

	sut := NewContextService(time.Hour)

	a := sut.Generate(User{UserID: "u"})
	b := sut.Generate(User{UserID: "u"})

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
}
