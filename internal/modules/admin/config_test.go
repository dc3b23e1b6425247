package admin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"uslugi/internal/domain"
)

func TestValidateConfigUnknownType(t *testing.T) {
	err := ValidateConfig("carousel_3000", nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestValidateConfigPostSectionLimits(t *testing.T) {
	for _, typ := range []domain.SectionType{
		domain.SectionSeekingHelp,
		domain.SectionNewestPosts,
		domain.SectionPopularCategories,
	} {
		assert.NoError(t, ValidateConfig(typ, nil), "%s empty config", typ)
		assert.NoError(t, ValidateConfig(typ, json.RawMessage(`{"limit":8}`)))
		assert.Error(t, ValidateConfig(typ, json.RawMessage(`{"limit":0}`)))
		assert.Error(t, ValidateConfig(typ, json.RawMessage(`{"limit":51}`)))
		assert.NoError(t, ValidateConfig(typ, json.RawMessage(`{"limit":50}`)))
	}
}

func TestValidateConfigHeroBanner(t *testing.T) {
	assert.Error(t, ValidateConfig(domain.SectionHeroBanner, nil),
		"hero banner without a title must fail")
	assert.Error(t, ValidateConfig(domain.SectionHeroBanner, json.RawMessage(`{"title":""}`)))

	assert.NoError(t, ValidateConfig(domain.SectionHeroBanner,
		json.RawMessage(`{"title":"Znajdź pomoc","overlay_opacity":50}`)))

	assert.Error(t, ValidateConfig(domain.SectionHeroBanner,
		json.RawMessage(`{"title":"X","overlay_opacity":101}`)))
}

func TestValidateConfigCustomHTML(t *testing.T) {
	assert.Error(t, ValidateConfig(domain.SectionCustomHTML, json.RawMessage(`{}`)))
	assert.NoError(t, ValidateConfig(domain.SectionCustomHTML,
		json.RawMessage(`{"html_content":"<div>treść</div>"}`)))
}

func TestValidateConfigCTA(t *testing.T) {
	assert.Error(t, ValidateConfig(domain.SectionCTA,
		json.RawMessage(`{"heading":"Gotowy?"}`)),
		"cta without buttons must fail")

	assert.NoError(t, ValidateConfig(domain.SectionCTA,
		json.RawMessage(`{"heading":"Gotowy?","button_text":"Start","button_link":"/posts"}`)))
}

func TestValidateConfigListSections(t *testing.T) {
	cases := []struct {
		typ   domain.SectionType
		field string
	}{
		{domain.SectionTestimonials, "testimonials"},
		{domain.SectionFAQ, "items"},
		{domain.SectionStats, "stats"},
		{domain.SectionFeatures, "features"},
		{domain.SectionImageGallery, "images"},
	}
	for _, c := range cases {
		assert.Error(t, ValidateConfig(c.typ, json.RawMessage(`{}`)), "%s empty", c.typ)
		assert.Error(t, ValidateConfig(c.typ, json.RawMessage(`{"`+c.field+`":[]}`)), "%s empty list", c.typ)
		assert.NoError(t, ValidateConfig(c.typ, json.RawMessage(`{"`+c.field+`":[{"x":1}]}`)), "%s one item", c.typ)
	}
}

func TestValidateConfigSpacer(t *testing.T) {
	assert.NoError(t, ValidateConfig(domain.SectionSpacer, nil))
	assert.NoError(t, ValidateConfig(domain.SectionSpacer,
		json.RawMessage(`{"height_desktop":80,"height_mobile":40}`)))
	assert.Error(t, ValidateConfig(domain.SectionSpacer,
		json.RawMessage(`{"height_desktop":-1}`)))
	assert.Error(t, ValidateConfig(domain.SectionSpacer,
		json.RawMessage(`{"height_mobile":501}`)))
}

func TestValidateConfigMalformedJSON(t *testing.T) {
	for _, typ := range []domain.SectionType{
		domain.SectionNewestPosts,
		domain.SectionHeroBanner,
		domain.SectionSpacer,
		domain.SectionFAQ,
	} {
		assert.Error(t, ValidateConfig(typ, json.RawMessage(`{broken`)), "%s", typ)
	}
}
