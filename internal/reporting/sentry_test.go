package reporting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	t.Run("connection reset by peer", func(t *testing.T) {
		t.Parallel()

		err := `Server error: Get "https://public-ubiservices.ubi.com/v1/profiles/deadbeef-8315-465d-9d44-cfc238c64f71/progressions": read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:443: read: connection reset by peer`
		want := `Server error: Get "https://public-ubiservices.ubi.com/v1/profiles/<profile-id>/progressions": read tcp <host>-><host>: read: connection reset by peer`
		require.Equal(t, want, sanitizeError(err))
	})

	t.Run("context deadline", func(t *testing.T) {
		t.Parallel()

		err := `Server error: Get "https://public-ubiservices.ubi.com/v1/profiles/deadbeef-8108-45ca-8424-cf7ba5929a3e/playtime": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`
		want := `Server error: Get "https://public-ubiservices.ubi.com/v1/profiles/<profile-id>/playtime": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`
		require.Equal(t, want, sanitizeError(err))
	})

	t.Run("undashed profile id", func(t *testing.T) {
		t.Parallel()

		err := `failed to get profiles from response: userId=deadbeef8315465d9d44cfc238c64f71`
		want := `failed to get profiles from response: userId=<profile-id>`
		require.Equal(t, want, sanitizeError(err))
	})

	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()

		ips := []string{
			`1:2:3:4:5:6:7:8`,
			`1::`,
			`1::8`,
			`1:2:3:4:5:6::8`,
			`1::7:8`,
			`1:2:3:4:5::8`,
			`1:2:3:4::8`,
			`1:2:3::8`,
			`1:2::8`,
			`::2:3:4:5:6:7:8`,
			`::8`,
			`::`,
		}
		for _, ip := range ips {
			t.Run(ip, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, "<host>", sanitizeError(fmt.Sprintf("[%s]:1234", ip)))
			})
		}
	})

	t.Run("no sensitive content", func(t *testing.T) {
		t.Parallel()

		err := `could not get ranked data: upstream API returned status code 503`
		require.Equal(t, err, sanitizeError(err))
	})
}
