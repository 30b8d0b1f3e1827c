package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
)

func TestIntegrate_NoPlaceholdersNoCandidates(t *testing.T) {
	_, status := Integrate("plain text body", nil, Options{})
	assert.Equal(t, StatusNoPlaceholdersAndNoCandidates, status)
}

func TestIntegrate_PlaceholdersButNoCandidates(t *testing.T) {
	_, status := Integrate("text [IMAGE: a chip] more text", nil, Options{})
	assert.Equal(t, StatusWarningNoCandidates, status)
}

func TestIntegrate_ExactMatchReplacesPlaceholder(t *testing.T) {
	body := "Intro text.\n[IMAGE: sleek gadget shot]\nMore text."
	candidates := []article.MediaCandidate{
		{URL: "https://example.com/gadget.png", AltText: "sleek gadget shot", Caption: "A beautifully lit product photo of the device."},
	}
	out, status := Integrate(body, candidates, Options{CaptionStyle: config.CaptionMarkdownItalic, MaxReuseCount: 2})
	assert.Equal(t, "SUCCESS_INTEGRATED_1_IMAGES", status)
	assert.Contains(t, out, "![sleek gadget shot](https://example.com/gadget.png)")
	assert.Contains(t, out, "*A beautifully lit product photo of the device.*")
}

func TestIntegrate_CandidateReusedUpToCap(t *testing.T) {
	body := "[IMAGE: sleek gadget shot]\ntext\n[IMAGE: sleek gadget shot]\ntext\n[IMAGE: sleek gadget shot]"
	candidates := []article.MediaCandidate{
		{URL: "https://example.com/gadget.png", AltText: "sleek gadget shot"},
	}
	out, status := Integrate(body, candidates, Options{MaxReuseCount: 2})
	assert.Equal(t, "SUCCESS_INTEGRATED_2_IMAGES", status)
	assert.Equal(t, 2, strings.Count(out, "![sleek gadget shot]"))
	assert.Contains(t, out, "[IMAGE: sleek gadget shot]") // third occurrence left unmatched
}

func TestIntegrate_FuzzyAlnumMatch(t *testing.T) {
	body := "[IMAGE: neural-network flow chart!]"
	candidates := []article.MediaCandidate{
		{URL: "https://example.com/nn.png", AltText: "Neural Network Flowchart"},
	}
	out, status := Integrate(body, candidates, Options{MaxReuseCount: 2})
	assert.Equal(t, "SUCCESS_INTEGRATED_1_IMAGES", status)
	assert.Contains(t, out, "https://example.com/nn.png")
}

func TestIntegrate_TrivialCaptionIsOmitted(t *testing.T) {
	body := "[IMAGE: speed icon]"
	candidates := []article.MediaCandidate{
		{URL: "https://example.com/icon.png", AltText: "speed icon", Caption: "Image"},
	}
	out, _ := Integrate(body, candidates, Options{CaptionStyle: config.CaptionMarkdownItalic})
	assert.NotContains(t, out, "*Image*")
}

func TestIntegrate_NoMatchLeavesPlaceholder(t *testing.T) {
	body := "[IMAGE: an unrelated diagram of the solar system]"
	candidates := []article.MediaCandidate{
		{URL: "https://example.com/gadget.png", AltText: "sleek gadget shot"},
	}
	out, status := Integrate(body, candidates, Options{MaxReuseCount: 2})
	assert.Equal(t, StatusNoMatchesPHExist, status)
	assert.Contains(t, out, "[IMAGE:")
}
