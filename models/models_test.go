package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextTruncatesAtLimit(t *testing.T) {
	input := strings.Repeat("a", MaxFieldLength+1)

	got := SanitizeText(input)

	assert.Equal(t, strings.Repeat("a", MaxFieldLength)+TruncationMarker, got)
}

func TestSanitizeTextKeepsValuesAtLimit(t *testing.T) {
	input := strings.Repeat("b", MaxFieldLength)
	assert.Equal(t, input, SanitizeText(input))
}

func TestSanitizeTextCountsCharactersNotBytes(t *testing.T) {
	input := strings.Repeat("é", MaxFieldLength+5)

	got := SanitizeText(input)

	assert.Equal(t, strings.Repeat("é", MaxFieldLength)+TruncationMarker, got)
}

func TestSanitizeTextStripsNullBytes(t *testing.T) {
	assert.Equal(t, "adminlogin", SanitizeText("admin\x00login\x00"))
}

func TestSanitizeOptional(t *testing.T) {
	assert.Nil(t, SanitizeOptional(nil))

	v := "x\x00y"
	got := SanitizeOptional(&v)
	if assert.NotNil(t, got) {
		assert.Equal(t, "xy", *got)
	}
}

func TestRequestRecordValidate(t *testing.T) {
	valid := RequestRecord{
		Timestamp:     time.Now(),
		ClientAddress: UnknownAddress,
		Method:        "GET",
		Path:          "/",
		Status:        200,
	}
	assert.Empty(t, valid.Validate())

	invalid := RequestRecord{}
	assert.Len(t, invalid.Validate(), 5)
}

func TestJoinAndSplitLabels(t *testing.T) {
	assert.Nil(t, JoinLabels(nil))

	joined := JoinLabels([]ThreatLabel{LabelAdminProbe, LabelScanner})
	if assert.NotNil(t, joined) {
		assert.Equal(t, "Admin/Login access attempt; Security scanner detected", *joined)
		assert.Equal(t, []string{string(LabelAdminProbe), string(LabelScanner)}, SplitNotes(*joined))
	}
}

func TestSnapshotHasBody(t *testing.T) {
	assert.False(t, (&RequestSnapshot{}).HasBody())
	assert.False(t, (&RequestSnapshot{Body: map[string]any{}}).HasBody())
	assert.True(t, (&RequestSnapshot{Body: map[string]any{"a": "b"}}).HasBody())
	assert.True(t, (&RequestSnapshot{RawBody: "plain text"}).HasBody())
}

func TestRequestParamsIsEmpty(t *testing.T) {
	assert.True(t, RequestParams{}.IsEmpty())
	assert.False(t, RequestParams{Route: map[string]string{"id": "1"}}.IsEmpty())
}
