package notice

import (
	"testing"

	"github.com/courtdata-tw/foreclosure-notices/internal/pdfdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateAnchors(t *testing.T) {
	policy := DefaultLayoutPolicy()

	t.Run("orders anchors by page then vertical position", func(t *testing.T) {
		doc := newFakeDoc(
			[]pdfdoc.Line{
				ln(300, 60, "使用情形"),
				ln(100, 120, "标别:甲"),
			},
			[]pdfdoc.Line{
				ln(50, 72, "備註"),
			},
		)

		anchors, err := locateAnchors(doc, policy)
		require.NoError(t, err)
		require.Len(t, anchors, 3)

		assert.Equal(t, AnchorLot, anchors[0].Kind)
		assert.Equal(t, 0, anchors[0].Page)
		assert.InDelta(t, 100.0, anchors[0].Top, 0.001)
		assert.Equal(t, "甲", anchors[0].Label)

		assert.Equal(t, AnchorUsage, anchors[1].Kind)
		assert.InDelta(t, 300.0, anchors[1].Top, 0.001)

		assert.Equal(t, AnchorRemarks, anchors[2].Kind)
		assert.Equal(t, 1, anchors[2].Page)
	})

	t.Run("drops content labels beyond the label column", func(t *testing.T) {
		doc := newFakeDoc(
			[]pdfdoc.Line{
				ln(60, 60, "使用情形"),
				ln(80, 150, "使用情形良好如現況"),
				ln(100, 60, "備註"),
				ln(120, 150, "備註事項如下所列"),
			},
		)

		anchors, err := locateAnchors(doc, policy)
		require.NoError(t, err)
		require.Len(t, anchors, 2)
		assert.Equal(t, AnchorUsage, anchors[0].Kind)
		assert.InDelta(t, 60.0, anchors[0].Top, 0.001)
		assert.Equal(t, AnchorRemarks, anchors[1].Kind)
		assert.InDelta(t, 100.0, anchors[1].Top, 0.001)
	})

	t.Run("label column boundary is inclusive", func(t *testing.T) {
		doc := newFakeDoc(
			[]pdfdoc.Line{
				ln(60, policy.LabelLeftMax, "使用情形"),
				ln(80, policy.LabelLeftMax+1, "使用情形"),
			},
		)

		anchors, err := locateAnchors(doc, policy)
		require.NoError(t, err)
		require.Len(t, anchors, 1)
		assert.InDelta(t, 60.0, anchors[0].Top, 0.001)
	})

	t.Run("lot labels are kept wherever they appear", func(t *testing.T) {
		doc := newFakeDoc(
			[]pdfdoc.Line{
				ln(60, 320, "标别:乙"),
			},
		)

		anchors, err := locateAnchors(doc, policy)
		require.NoError(t, err)
		require.Len(t, anchors, 1)
		assert.Equal(t, AnchorLot, anchors[0].Kind)
		assert.Equal(t, "乙", anchors[0].Label)
	})

	t.Run("traditional script labels match", func(t *testing.T) {
		doc := newFakeDoc(
			[]pdfdoc.Line{
				ln(40, 60, "標別：丙"),
				ln(60, 60, "使 用 情 形"),
				ln(80, 60, "備 註"),
			},
		)

		anchors, err := locateAnchors(doc, policy)
		require.NoError(t, err)
		require.Len(t, anchors, 3)
		assert.Equal(t, "丙", anchors[0].Label)
	})
}

func TestLotLabel(t *testing.T) {
	tests := []struct {
		name  string
		match string
		want  string
	}{
		{"bare label", "标别:甲", "甲"},
		{"label after spaced colon", "标别: 乙", "乙"},
		{"corner quoted", "标别: 「甲」", "甲"},
		{"double quoted", `标别:"丙"`, "丙"},
		{"white corner quoted", "标别：『乙標』", "乙標"},
		{"quoted wins over trailing text", "标别: 「甲」標的物如附表", "甲"},
		{"first token of unquoted remainder", "标别: 丁 (拍賣程序注意事項)", "丁"},
		{"wrapping parens stripped", "标别:（戊）", "戊"},
		{"spaced glyphs", "标 别 : 甲", "甲"},
		{"empty remainder", "标别:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lotLabel(tt.match))
		})
	}
}
