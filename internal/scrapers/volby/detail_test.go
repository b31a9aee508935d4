package volby

import (
	"testing"
	"volby-harvest/internal/components/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseDetailHeaderMapped(t *testing.T) {
	detail, err := ParseDetail(telemetry.NewRecordingAPI(), parseDoc(t, foreignDetailHtml), HeaderMapped)
	require.NoError(t, err)

	expectedMetadata := Fields{
		{Name: "Voliči v seznamu", Value: Text("100")},
		{Name: "Vydané obálky", Value: Text("80")},
		{Name: "Volební účast v %", Value: Text("80,00")},
		{Name: "Odevzdané obálky", Value: Text("80")},
		{Name: "Platné hlasy", Value: Text("78")},
	}
	if diff := cmp.Diff(expectedMetadata, detail.Metadata); diff != "" {
		t.Fatal("metadata mismatch (-want +got):\n", diff)
	}

	require.Equal(t, []string{"Strana A", "Strana B"}, detail.Tally.Parties())
	votes, ok := detail.Tally.Get("Strana A")
	require.True(t, ok)
	require.Equal(t, int64(15), votes)
	votes, _ = detail.Tally.Get("Strana B")
	require.Equal(t, int64(7), votes)

	_, ok = detail.Tally.Get("Strana C")
	require.False(t, ok, "non-numeric votes must not produce a party")
	_, ok = detail.Tally.Get("Strana D")
	require.False(t, ok, "rows with fewer than three cells are ignored")
}

func TestParseDetailTurnout(t *testing.T) {
	detail, err := ParseDetail(telemetry.NewRecordingAPI(), parseDoc(t, municipalityDetailHtml), Turnout)
	require.NoError(t, err)

	expectedMetadata := Fields{
		{Name: "Voliči celkem", Value: Text("13104")},
		{Name: "Odevzdané obálky", Value: Text("8473")},
		{Name: "Platné hlasy", Value: Text("8437")},
	}
	if diff := cmp.Diff(expectedMetadata, detail.Metadata); diff != "" {
		t.Fatal("metadata mismatch (-want +got):\n", diff)
	}
	require.Equal(t, []string{
		"Občanská demokratická strana",
		"Řád národa - Vlastenecká unie",
		"ANO 2011",
	}, detail.Tally.Parties())
}

func TestParseDetailTurnoutShortRow(t *testing.T) {
	detail, err := ParseDetail(telemetry.NewRecordingAPI(), parseDoc(t, municipalityDetailShortHtml), Turnout)
	require.NoError(t, err)
	require.Empty(t, detail.Metadata)
	require.Equal(t, 1, detail.Tally.Len())
}

func TestParseDetailNotEnoughTables(t *testing.T) {
	_, err := ParseDetail(telemetry.NewRecordingAPI(), parseDoc(t, detailTwoTablesHtml), HeaderMapped)
	require.ErrorIs(t, err, ErrNotEnoughTables)
}

func TestParseVotes(t *testing.T) {
	testCases := []struct {
		text     string
		expected int64
		ok       bool
	}{
		{text: "0", expected: 0, ok: true},
		{text: "1052", expected: 1052, ok: true},
		{text: "007", expected: 7, ok: true},
		{text: ""},
		{text: "—"},
		{text: "-"},
		{text: "-5"},
		{text: "+5"},
		{text: "1 234"},
		{text: "1\u00a0234"},
		{text: "12,5"},
		{text: "٣"},
		{text: "99999999999999999999"},
	}

	for _, test := range testCases {
		votes, ok := ParseVotes(test.text)
		require.Equal(t, test.ok, ok, test.text)
		require.Equal(t, test.expected, votes, test.text)
	}
}
