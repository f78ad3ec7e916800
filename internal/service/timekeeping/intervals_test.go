package timekeeping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSpans(t *testing.T) {
	merged := mergeSpans([]span{{600, 720}, {540, 660}, {780, 840}})
	assert.Equal(t, []span{{540, 720}, {780, 840}}, merged)
}

func TestMergeSpans_TouchingCoalesce(t *testing.T) {
	merged := mergeSpans([]span{{540, 600}, {600, 660}})
	assert.Equal(t, []span{{540, 660}}, merged)
}

func TestMergeSpans_DropsEmpty(t *testing.T) {
	merged := mergeSpans([]span{{600, 600}, {700, 650}})
	assert.Nil(t, merged)
}

func TestIntersectSpans(t *testing.T) {
	a := []span{{540, 720}, {780, 1080}}
	b := []span{{700, 800}}
	assert.Equal(t, []span{{700, 720}, {780, 800}}, intersectSpans(a, b))
}

func TestIntersectSpans_NoOverlap(t *testing.T) {
	assert.Empty(t, intersectSpans([]span{{0, 100}}, []span{{200, 300}}))
}

func TestSubtractSpans(t *testing.T) {
	out := subtractSpans([]span{{500, 1100}}, []span{{540, 1080}})
	assert.Equal(t, []span{{500, 540}, {1080, 1100}}, out)
}

func TestSubtractSpans_FullyCovered(t *testing.T) {
	assert.Empty(t, subtractSpans([]span{{600, 700}}, []span{{540, 1080}}))
}

func TestSplitAfter(t *testing.T) {
	head, tail := splitAfter([]span{{540, 1080}}, 480)
	assert.Equal(t, []span{{540, 1020}}, head)
	assert.Equal(t, []span{{1020, 1080}}, tail)
}

func TestSplitAfter_AcrossSpans(t *testing.T) {
	head, tail := splitAfter([]span{{540, 720}, {780, 1200}}, 480)
	assert.Equal(t, []span{{540, 720}, {780, 1080}}, head)
	assert.Equal(t, []span{{1080, 1200}}, tail)
	assert.Equal(t, 480, totalMinutes(head))
}

func TestSplitAfter_TargetExceedsPresence(t *testing.T) {
	head, tail := splitAfter([]span{{540, 600}}, 480)
	assert.Equal(t, []span{{540, 600}}, head)
	assert.Empty(t, tail)
}
