package engine

// Match-reason labels, in blend priority order.
const (
	ReasonGlobalTrend      = "Global trend"
	ReasonCommunity        = "Your community recommends it"
	ReasonFavoriteDirector = "From a favorite director"
	ReasonSimilarPlot      = "Similar plot to movies you love"
	ReasonTopGenre         = "From your top genres"
	ReasonTasteMode        = "Based on your taste"
	ReasonCommunityMode    = "Based on your community"
)

// blendWeights is the (social, content, quality) split for one mode.
type blendWeights struct {
	social  float64
	content float64
	quality float64
}

func (c Config) weights(hasNeighbors bool) blendWeights {
	if hasNeighbors {
		return blendWeights{
			social:  c.CommunitySocialWeight,
			content: c.CommunityContentWeight,
			quality: c.CommunityQualityWeight,
		}
	}
	return blendWeights{
		social:  0,
		content: c.TasteContentWeight,
		quality: c.TasteQualityWeight,
	}
}

// blend combines the component scores into one prediction.
func (e *Engine) blend(social, genre, director, plot, quality float64, w blendWeights) float64 {
	content := genre*e.cfg.GenreWeight + director*e.cfg.DirectorWeight + plot*e.cfg.PlotWeight
	return social*w.social + content*w.content + quality*w.quality
}

// matchReason picks the label for a candidate by first-match priority:
// strong social signal, then director, then plot, then genre, then the
// mode fallback.
func (e *Engine) matchReason(social, genre, director, plot float64, hasNeighbors bool) string {
	switch {
	case social > e.cfg.SocialReasonMin:
		return ReasonCommunity
	case director > 0:
		return ReasonFavoriteDirector
	case plot > e.cfg.PlotReasonMin:
		return ReasonSimilarPlot
	case genre > e.cfg.GenreReasonMin:
		return ReasonTopGenre
	case hasNeighbors:
		return ReasonCommunityMode
	default:
		return ReasonTasteMode
	}
}
