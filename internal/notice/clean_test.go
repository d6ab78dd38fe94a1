package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name string
		kind AnchorKind
		raw  string
		want string
	}{
		{
			"running header line and page number removed",
			AnchorUsage,
			"第二頁(續上頁)\n2\n內容一\n內容二",
			"內容一\n內容二",
		},
		{
			"running header removed when embedded in a content line",
			AnchorUsage,
			"內容開頭第 三 頁（續上頁）接續內容",
			"內容開頭接續內容",
		},
		{
			"header not followed by a page number keeps the next line",
			AnchorUsage,
			"第二頁(續上頁)\n內容",
			"內容",
		},
		{
			"page number kept without a preceding header",
			AnchorRemarks,
			"本件點交\n2\n完畢",
			"本件點交\n2\n完畢",
		},
		{
			"blank lines dropped",
			AnchorUsage,
			"一樓出租\n\n   \n二樓自住",
			"一樓出租\n二樓自住",
		},
		{
			"label-only first line dropped",
			AnchorUsage,
			"使用情形\n空地",
			"空地",
		},
		{
			"label with colon first line dropped",
			AnchorRemarks,
			"備註：\n如附表",
			"如附表",
		},
		{
			"label colon prefix stripped from first line",
			AnchorUsage,
			"使用情形：廠房",
			"廠房",
		},
		{
			"body starting with label glyphs preserved",
			AnchorRemarks,
			"備註內容",
			"備註內容",
		},
		{
			"spaced label remnant dropped",
			AnchorUsage,
			"使 用 情 形\n現況出租",
			"現況出租",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeField(tt.kind, tt.raw))
		})
	}
}

func TestTruncateAtFooter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no marker unchanged", "一、本件拍賣之不動產如附表", "一、本件拍賣之不動產如附表"},
		{"division letterhead", "合法內容臺灣士林地方法院民事執行處此後全刪", "合法內容"},
		{"bare division name", "合法內容民事執行處落款", "合法內容"},
		{"form code", "合法內容（格式三）其他", "合法內容"},
		{"form code with digits", "合法內容(格式12)其他", "合法內容"},
		{"category marker", "合法內容類別：不動產", "合法內容"},
		{"approval line", "合法內容核定如右", "合法內容"},
		{"judicial officer title", "合法內容司法事務官王大明", "合法內容"},
		{"court clerk title", "合法內容書記官林小明", "合法內容"},
		{"earliest marker wins", "內容A核定內容B民事執行處", "內容A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateAtFooter(tt.text))
		})
	}
}

func TestCleanFieldUsage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"truncated at remarks label line",
			"一樓出租\n二樓自住\n備註\n混入的備註內容",
			"一樓出租\n二樓自住",
		},
		{
			"truncated at spaced remarks label line",
			"全棟空置\n備 註：點交",
			"全棟空置",
		},
		{
			"first line matching remarks label is kept",
			"備註開頭的正文\n其餘內容",
			"備註開頭的正文\n其餘內容",
		},
		{
			"footer boilerplate is not stripped from usage",
			"現況出租\n民事執行處",
			"現況出租\n民事執行處",
		},
		{
			"empty after cleaning",
			"使用情形：\n\n",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanField(AnchorUsage, tt.raw))
		})
	}
}

func TestCleanFieldRemarks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"footer cut then trailing whitespace trimmed",
			"備註內容\n臺灣士林地方法院民事執行處\n書記官 王大明",
			"備註內容",
		},
		{
			"lot label line truncates",
			"本件不點交\n标别:乙\n下一標內容",
			"本件不點交",
		},
		{
			"lot label on first line is kept",
			"标别:乙 誤入正文\n其餘內容",
			"标别:乙 誤入正文\n其餘內容",
		},
		{
			"footer cut runs before lot label cut",
			"內容\n核定事項\n标别:乙\n尾巴",
			"內容",
		},
		{
			"label remnant then footer",
			"備註：如附表二\n（格式八）",
			"如附表二",
		},
		{
			"usage label does not truncate remarks",
			"本件點交\n使用情形一併敘明",
			"本件點交\n使用情形一併敘明",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanField(AnchorRemarks, tt.raw))
		})
	}
}
