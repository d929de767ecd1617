package mimeutil

import (
	"testing"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainPart() *Part {
	return &Part{MIMEType: "text", MIMESubType: "plain", Encoding: "quoted-printable"}
}

func htmlPart() *Part {
	return &Part{MIMEType: "text", MIMESubType: "html", Encoding: "base64"}
}

func alternativePart() *Part {
	return &Part{
		MIMEType:    "multipart",
		MIMESubType: "alternative",
		Children:    []*Part{plainPart(), htmlPart()},
	}
}

func TestFromIMAPBodyStructure_NormalizesCase(t *testing.T) {
	bs := &imap.BodyStructure{
		MIMEType:    "TEXT",
		MIMESubType: "HTML",
		Encoding:    "BASE64",
		Params:      map[string]string{"CHARSET": "ISO-8859-1"},
	}

	part := FromIMAPBodyStructure(bs)
	require.NotNil(t, part)
	assert.True(t, part.Is("text", "html"))
	assert.Equal(t, "base64", part.Encoding)
	assert.Equal(t, "ISO-8859-1", part.Params["charset"])
	assert.Equal(t, "ISO-8859-1", part.Charset())
}

func TestFromIMAPBodyStructure_NestedTree(t *testing.T) {
	bs := &imap.BodyStructure{
		MIMEType:    "multipart",
		MIMESubType: "mixed",
		Parts: []*imap.BodyStructure{
			{
				MIMEType:    "multipart",
				MIMESubType: "alternative",
				Parts: []*imap.BodyStructure{
					{MIMEType: "text", MIMESubType: "plain"},
					{MIMEType: "text", MIMESubType: "html"},
				},
			},
			{MIMEType: "application", MIMESubType: "pdf"},
		},
	}

	part := FromIMAPBodyStructure(bs)
	require.NotNil(t, part)
	require.Len(t, part.Children, 2)
	assert.True(t, part.IsMultipart())
	require.Len(t, part.Children[0].Children, 2)
	assert.True(t, part.Children[0].Children[1].Is("text", "html"))
}

func TestResolvePath_SinglePartAddressableAsOne(t *testing.T) {
	part := plainPart()
	assert.Equal(t, part, part.ResolvePath("1"))
	assert.Nil(t, part.ResolvePath("2"))
	assert.Nil(t, part.ResolvePath("1.1"))
}

func TestResolvePath_NestedAddresses(t *testing.T) {
	root := &Part{
		MIMEType:    "multipart",
		MIMESubType: "mixed",
		Children: []*Part{
			alternativePart(),
			{MIMEType: "application", MIMESubType: "pdf"},
		},
	}

	resolved := root.ResolvePath("1.2")
	require.NotNil(t, resolved)
	assert.True(t, resolved.Is("text", "html"))

	resolved = root.ResolvePath("2")
	require.NotNil(t, resolved)
	assert.True(t, resolved.Is("application", "pdf"))
}

func TestResolvePath_OutOfRange(t *testing.T) {
	root := alternativePart()
	assert.Nil(t, root.ResolvePath("3"))
	assert.Nil(t, root.ResolvePath("1.2"))
	assert.Nil(t, root.ResolvePath("0"))
	assert.Nil(t, root.ResolvePath("not-a-path"))
}

func TestFindPart_PositionalPaths(t *testing.T) {
	root := &Part{
		MIMEType:    "multipart",
		MIMESubType: "mixed",
		Children: []*Part{
			{MIMEType: "application", MIMESubType: "pdf"},
			alternativePart(),
		},
	}

	path, part := root.FindPart("text", "html")
	require.NotNil(t, part)
	assert.Equal(t, "2.2", path)

	path, part = root.FindPart("text", "plain")
	require.NotNil(t, part)
	assert.Equal(t, "2.1", path)
}

func TestFindPart_SinglePartMessage(t *testing.T) {
	part := htmlPart()

	path, found := part.FindPart("text", "html")
	require.NotNil(t, found)
	assert.Equal(t, "1", path)

	_, found = part.FindPart("text", "plain")
	assert.Nil(t, found)
}

func TestHasHTMLPart(t *testing.T) {
	assert.True(t, alternativePart().HasHTMLPart())
	assert.True(t, htmlPart().HasHTMLPart())
	assert.False(t, plainPart().HasHTMLPart())

	textOnly := &Part{
		MIMEType:    "multipart",
		MIMESubType: "mixed",
		Children:    []*Part{plainPart(), {MIMEType: "application", MIMESubType: "pdf"}},
	}
	assert.False(t, textOnly.HasHTMLPart())
}

func TestCharset_DefaultsToUTF8(t *testing.T) {
	assert.Equal(t, "utf-8", plainPart().Charset())
}
