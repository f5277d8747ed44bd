package provider

import "catalog-export/core/selector"

// SizeOriginal requests the image at its uploaded resolution.
const SizeOriginal = "original"

// ByWidth prefers the widest image. Movie backdrops are chosen this way.
var ByWidth = selector.Higher(func(i *Image) float64 { return float64(i.Width) })

// ByVoteAverage prefers the best voted image. Posters and show fanart are chosen this way.
var ByVoteAverage = selector.Higher(func(i *Image) float64 { return i.VoteAverage })

// BestImageURL picks the preferred candidate and resolves it to an absolute URL.
// It returns "" when there is no usable candidate.
func BestImageURL(p Provider, images []Image, prefer selector.Prefer[Image]) string {
	best := selector.Best(selector.Pointers(images), prefer)
	if best == nil || best.FilePath == "" {
		return ""
	}
	return p.ResolveImageURL(SizeOriginal, best.FilePath)
}
