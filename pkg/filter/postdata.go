package filter

import (
	"strconv"
	"strings"

	"routarr/pkg/models"
)

// PostData is what the engine derives from a notification's free-form
// extra fields: the media type and, for episodic media, the requested
// season numbers.
type PostData struct {
	MediaType string `json:"media_type"`
	Seasons   []int  `json:"requested_seasons,omitempty"`
	// SeasonsPresent distinguishes a missing "Requested Seasons" entry
	// from one whose value parsed to no seasons at all.
	SeasonsPresent bool `json:"-"`
}

// ExtractPostData derives the media type and requested seasons from a
// notification. Seasons are parsed only for tv media; movies never carry
// a seasons field, even when a requested-seasons extra entry is present.
// Season tokens that do not parse as integers are silently discarded.
func ExtractPostData(n *models.Notification) PostData {
	pd := PostData{}
	if n == nil || n.Media == nil {
		return pd
	}
	pd.MediaType = n.Media.MediaType
	if pd.MediaType != models.MediaTypeTV {
		return pd
	}
	raw, ok := n.ExtraValue(models.ExtraRequestedSeasons)
	if !ok {
		return pd
	}
	pd.SeasonsPresent = true
	pd.Seasons = parseSeasons(raw)
	return pd
}

func parseSeasons(raw string) []int {
	parts := strings.Split(raw, ",")
	seasons := make([]int, 0, len(parts))
	for _, part := range parts {
		season, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		seasons = append(seasons, season)
	}
	return seasons
}
