package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemHealth_Healthy(t *testing.T) {
	t.Parallel()

	healthy := ComponentHealth{Healthy: true}
	unhealthy := ComponentHealth{Healthy: false, Message: "Oops"}

	cases := []struct {
		name       string
		components map[string]ComponentHealth
		want       bool
	}{
		{"no components", map[string]ComponentHealth{}, true},
		{"healthy components", map[string]ComponentHealth{"db": healthy}, true},
		{"unhealthy components", map[string]ComponentHealth{"db": unhealthy}, false},
		{"mixed components", map[string]ComponentHealth{"db": healthy, "cache": unhealthy}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sut := SystemHealth{Components: tc.components}
			require.Equal(t, tc.want, sut.Healthy())
		})
	}
}

func TestService_CheckHealth(t *testing.T) {
	t.Parallel()

	sut := NewService(map[string]Checker{
		"up":   CheckerFunc(func(ctx context.Context) error { return nil }),
		"down": CheckerFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	})

	system := sut.CheckHealth(context.Background())

	require.False(t, system.Healthy())
	require.Equal(t, ComponentHealth{Healthy: true}, system.Components["up"])
	require.Equal(t, ComponentHealth{Healthy: false, Message: "connection refused"}, system.Components["down"])
}
