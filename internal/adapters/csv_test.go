package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taaftHeader = "ai_link,task_label,external_ai_link href,visit_ai_website_link href," +
	"taaft_icon src,ai_launch_date,stats_views,saves,average_rating,comment_body\n"

func TestTAAFT_Parse(t *testing.T) {
	payload := []byte(taaftHeader +
		`ChatGPT,Writing,https://openai.com/chatgpt,,https://img.example/icon.svg,Free + from $20/mo,"1,500",25,4.5,Great assistant for drafting` + "\n" +
		"Midjourney,Image Generation,,https://midjourney.com,,Paid,900,12,4.8,ok\n")

	adapter := NewTAAFT()
	records, rowErrs := adapter.Parse(payload)

	require.Empty(t, rowErrs)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ChatGPT", first.Get(FieldName))
	assert.Equal(t, "Writing. Great assistant for drafting", first.Get(FieldDescription))
	assert.Equal(t, "https://openai.com/chatgpt", first.Get(FieldWebsiteURL))
	assert.Equal(t, "https://img.example/icon.svg", first.Get(FieldLogoURL))
	assert.Equal(t, "Free + from $20/mo", first.Get(FieldPricing))
	assert.Equal(t, "writing", first.Get(FieldTags))
	assert.Equal(t, "4.5", first.Get(FieldRating))
	assert.Equal(t, "1,500", first.Get(FieldViews))
	assert.Equal(t, "25", first.Get(FieldSaves))

	second := records[1]
	// Short comments fall back to the task label alone, and the visit
	// link fills in when the external link is empty.
	assert.Equal(t, "Image Generation", second.Get(FieldDescription))
	assert.Equal(t, "https://midjourney.com", second.Get(FieldWebsiteURL))
}

func TestTAAFT_ValidateFormat(t *testing.T) {
	adapter := NewTAAFT()

	err := adapter.ValidateFormat([]byte(taaftHeader))
	assert.NoError(t, err)

	err = adapter.ValidateFormat([]byte("task_label,saves\nWriting,3\n"))
	var format *FormatError
	require.ErrorAs(t, err, &format)
	assert.Equal(t, []string{"ai_link"}, format.Missing)
}

func TestTAAFT_HeaderCaseInsensitive(t *testing.T) {
	adapter := NewTAAFT()

	payload := []byte("AI_LINK,Task_Label\nChatGPT,Writing\n")
	require.NoError(t, adapter.ValidateFormat(payload))

	records, rowErrs := adapter.Parse(payload)
	require.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, "ChatGPT", records[0].Get(FieldName))
}

func TestTAAFT_BlankRowsSkippedSilently(t *testing.T) {
	payload := []byte("ai_link,task_label\nChatGPT,Writing\n,\n")

	records, rowErrs := NewTAAFT().Parse(payload)
	assert.Empty(t, rowErrs, "blank padding rows are not errors")
	assert.Len(t, records, 1)
}

func TestProductHunt_Parse(t *testing.T) {
	payload := []byte("name,tagline,description,website,maker,upvotes,comments_count,pricing,category\n" +
		"ChatGPT,AI assistant,Revolutionary conversational AI chatbot,https://openai.com/chatgpt,OpenAI,1500,250,Freemium,AI Tools\n" +
		"TinyTool,Does one thing,short,https://tiny.example,Jane Doe,5,0,,\n")

	records, rowErrs := NewProductHunt().Parse(payload)
	require.Empty(t, rowErrs)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ChatGPT", first.Get(FieldName))
	assert.Equal(t, "Revolutionary conversational AI chatbot", first.Get(FieldDescription))
	assert.Equal(t, "ai tools,by-openai", first.Get(FieldTags))
	assert.Equal(t, "1500", first.Get(FieldUpvotes))
	assert.Equal(t, "250", first.Get(FieldComments))

	// A too-short description falls back to the tagline.
	second := records[1]
	assert.Equal(t, "Does one thing", second.Get(FieldDescription))
	assert.Equal(t, "by-jane-doe", second.Get(FieldTags))
}

func TestProductHunt_ValidateFormat_MissingColumns(t *testing.T) {
	err := NewProductHunt().ValidateFormat([]byte("name,website\nChatGPT,https://x.example\n"))

	var format *FormatError
	require.ErrorAs(t, err, &format)
	assert.Equal(t, []string{"tagline"}, format.Missing)
}

func TestHexofy_Parse_CandidateColumns(t *testing.T) {
	// Hexofy column names vary per capture; candidate lookup handles it.
	payload := []byte("tool_name,summary,link,type,cost\n" +
		"Midjourney,AI image generation from text prompts,https://midjourney.com,Image,From $10/mo\n")

	records, rowErrs := NewHexofy().Parse(payload)
	require.Empty(t, rowErrs)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Midjourney", rec.Get(FieldName))
	assert.Equal(t, "AI image generation from text prompts", rec.Get(FieldDescription))
	assert.Equal(t, "https://midjourney.com", rec.Get(FieldWebsiteURL))
	assert.Equal(t, "image", rec.Get(FieldTags))
	assert.Equal(t, "From $10/mo", rec.Get(FieldPricing))
}

func TestHexofy_Parse_FirstCandidateWins(t *testing.T) {
	payload := []byte("title,name,description\n" +
		"Preferred Title,Fallback Name,Something descriptive\n")

	records, rowErrs := NewHexofy().Parse(payload)
	require.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, "Preferred Title", records[0].Get(FieldName))
}

func TestCSVAdapter_MalformedRowContinues(t *testing.T) {
	payload := []byte("name,tagline\n" +
		"Good Tool,fine tagline\n" +
		"Ragged Row,extra,cells,here\n" +
		"Another Tool,also fine\n")

	records, rowErrs := NewProductHunt().Parse(payload)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, 3, rowErrs[0].Row, "row numbers count the header")
	require.Len(t, records, 2)
	assert.Equal(t, "Good Tool", records[0].Get(FieldName))
	assert.Equal(t, "Another Tool", records[1].Get(FieldName))
}

func TestCSVAdapter_UnreadablePayload(t *testing.T) {
	err := NewProductHunt().ValidateFormat([]byte(""))

	var format *FormatError
	require.ErrorAs(t, err, &format)
	assert.NotEmpty(t, format.Reason)
}

func TestRawRecord_SetDropsEmpty(t *testing.T) {
	rec := RawRecord{}
	rec.Set(FieldName, "  spaced  ")
	rec.Set(FieldDescription, "   ")

	assert.Equal(t, "spaced", rec.Get(FieldName))
	_, present := rec[FieldDescription]
	assert.False(t, present)
}
