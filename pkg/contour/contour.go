// Package contour turns raw traced polygons into a ranked list of
// candidate object outlines. Raw contours arrive from several detection
// strategies at once, so the same physical object is usually found more
// than once; this package filters noise by area, merges overlapping
// detections, separates the calibration sheet from the target object,
// and ranks the survivors.
package contour

import "github.com/chazu/jigcut/pkg/geom"

// Method tags which detection strategy produced a raw contour. It is
// carried for diagnostics and merge tie-breaking only; classification
// never depends on it.
type Method string

const (
	MethodCanny         Method = "canny"
	MethodAdaptive      Method = "adaptive"
	MethodOtsu          Method = "otsu"
	MethodColorDistance Method = "color-distance"
	MethodManual        Method = "manual"
)

// Raw is an unclassified traced contour as delivered by a detection
// strategy: the polygon plus its raw pixel area and origin tag.
type Raw struct {
	Polygon geom.Polygon
	Area    float64
	Method  Method
}

// Candidate is a classified, deduplicated contour.
type Candidate struct {
	Polygon geom.Polygon
	Area    float64
	Method  Method

	// IsReference marks the calibration object (the paper sheet),
	// recognized purely by its size relative to the image.
	IsReference bool
}

// Config holds the classifier thresholds. The source pipelines this
// replaces used several hard-coded variants of these numbers; here they
// are explicit configuration with the middle-of-the-road defaults.
type Config struct {
	// MinAreaFrac and MaxAreaFrac bound accepted contour area as a
	// fraction of total image area. Below the minimum is noise; above
	// the maximum is a near-whole-image false positive.
	MinAreaFrac float64
	MaxAreaFrac float64

	// DedupIoU is the bounding-box IoU above which two contours are
	// treated as the same physical object.
	DedupIoU float64

	// ReferenceAreaFrac is the image-area fraction above which a
	// surviving contour is classified as the reference sheet.
	ReferenceAreaFrac float64
}

// DefaultConfig returns the classifier defaults.
func DefaultConfig() Config {
	return Config{
		MinAreaFrac:       0.005,
		MaxAreaFrac:       0.95,
		DedupIoU:          0.6,
		ReferenceAreaFrac: 0.3,
	}
}

// DetectCandidates filters, deduplicates, classifies, and ranks raw
// contours. An empty input produces an empty (non-nil error free) result;
// no surviving candidate is a normal outcome, not a failure.
//
// Deduplication walks the input in discovery order. A contour whose bbox
// IoU against an already-accepted candidate exceeds cfg.DedupIoU is
// merged into it: the accepted entry is replaced when the newcomer has
// strictly more vertices (taken as a proxy for boundary fidelity),
// otherwise the newcomer is dropped.
func DetectCandidates(raws []Raw, imageArea float64, cfg Config) []Candidate {
	var unique []Candidate

	for _, r := range raws {
		if len(r.Polygon) < 3 {
			continue
		}
		if imageArea > 0 {
			frac := r.Area / imageArea
			if frac < cfg.MinAreaFrac || frac > cfg.MaxAreaFrac {
				continue
			}
		}

		merged := false
		for i := range unique {
			if geom.BBoxIoU(r.Polygon, unique[i].Polygon) > cfg.DedupIoU {
				if len(r.Polygon) > len(unique[i].Polygon) {
					unique[i].Polygon = r.Polygon
					unique[i].Area = r.Area
					unique[i].Method = r.Method
				}
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		unique = append(unique, Candidate{
			Polygon: r.Polygon,
			Area:    r.Area,
			Method:  r.Method,
		})
	}

	for i := range unique {
		unique[i].IsReference = imageArea > 0 &&
			unique[i].Area/imageArea > cfg.ReferenceAreaFrac
	}

	// Rank by area, largest first. Insertion sort keeps discovery order
	// for equal areas.
	for i := 1; i < len(unique); i++ {
		for j := i; j > 0 && unique[j].Area > unique[j-1].Area; j-- {
			unique[j], unique[j-1] = unique[j-1], unique[j]
		}
	}

	return unique
}

// SelectTarget picks the candidate the pipeline should offer first: the
// largest non-reference contour, falling back to the largest contour
// overall when everything was classified as reference. The boolean is
// false only when the list is empty.
func SelectTarget(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	for _, c := range cands {
		if !c.IsReference {
			return c, true
		}
	}
	return cands[0], true
}
