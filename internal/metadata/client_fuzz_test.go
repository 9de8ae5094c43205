package metadata

import "testing"

func FuzzConvertToMetadata(f *testing.F) {
	f.Add("https://example.com/p.jpg", 2006, 90)
	f.Add("", 0, 0)
	f.Add("   ", -1, 100000)

	f.Fuzz(func(t *testing.T, poster string, year, runtime int) {
		resp := apiResponse{}
		if poster != "" {
			resp.PosterURL = &poster
		}
		if year != 0 {
			resp.ReleaseYear = &year
		}
		if runtime != 0 {
			resp.RuntimeMinutes = &runtime
		}

		meta := convertToMetadata(resp)
		if meta == nil {
			t.Fatalf("convertToMetadata returned nil")
		}
		if meta.PosterURL != nil && *meta.PosterURL == "" {
			t.Fatalf("poster URL should never be empty when present")
		}
	})
}
