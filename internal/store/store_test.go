package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata-tw/foreclosure-notices/internal/config"
	"github.com/courtdata-tw/foreclosure-notices/internal/notice"
)

func TestDirStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewDirStore(t.TempDir())

	exists, err := s.Exists(ctx, "auctionData.json")
	require.NoError(t, err)
	assert.False(t, exists)

	payload := []byte(`{"data":[]}`)
	require.NoError(t, s.Save(ctx, "auctionData.json", payload))

	exists, err = s.Exists(ctx, "auctionData.json")
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := s.Load(ctx, "auctionData.json")
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
}

func TestDirStoreLoadMissing(t *testing.T) {
	s := NewDirStore(t.TempDir())

	_, err := s.Load(context.Background(), "absent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.json")
}

func TestDirStoreSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewDirStore(dir)

	require.NoError(t, s.Save(context.Background(), "out.json", []byte("[]")))

	_, err := os.Stat(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
}

func TestOpenSelectsLocalBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &DirStore{}, s)
}

func TestDecodeCases(t *testing.T) {
	t.Run("retains unknown fields", func(t *testing.T) {
		data := []byte(`{"data":[
			{"caseNumber":"113-司執-0001","pdfUrl":"https://example.com/1.pdf","court":"士林地方法院","saleDate":"2025-01-15"},
			{"caseNumber":"113-司執-0002","pdfUrl":"https://example.com/2.pdf"}
		]}`)

		cases, err := DecodeCases(data)
		require.NoError(t, err)
		require.Len(t, cases, 2)

		assert.Equal(t, "113-司執-0001", cases[0].CaseNumber)
		assert.Equal(t, "https://example.com/1.pdf", cases[0].PDFURL)
		assert.Equal(t, "士林地方法院", cases[0].Raw["court"])
		assert.Equal(t, "2025-01-15", cases[0].Raw["saleDate"])
		assert.Nil(t, cases[1].Raw["court"])
	})

	t.Run("missing data key", func(t *testing.T) {
		cases, err := DecodeCases([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, cases)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := DecodeCases([]byte(`{"data":`))
		assert.Error(t, err)
	})
}

func TestDetailsCodec(t *testing.T) {
	list := []CaseDetails{
		{
			CaseNumber: "113-0001",
			AuctionDetails: notice.Details{BidSections: []notice.BidSection{{
				BidName: "甲",
				Header:  "112年司执字第12345号 財產所有人: OOO",
				Usage:   "廠房，空地",
				Remarks: "點交",
			}}},
		},
		{
			CaseNumber:     "113-0002",
			AuctionDetails: notice.Details{Error: "scanned document: first page has 3 characters of text (minimum 100)"},
		},
	}

	data, err := EncodeDetails(list)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"auctionDetails"`)

	decoded, err := DecodeDetails(data)
	require.NoError(t, err)
	assert.Equal(t, list, decoded)
}

func TestEncodeDetailsEmpty(t *testing.T) {
	data, err := EncodeDetails(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
