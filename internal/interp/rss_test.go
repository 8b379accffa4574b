package interp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind-generator/examples/rss"
	"xmlbind-generator/internal/interp"
	"xmlbind-generator/internal/mapping"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/internal/plan"
	"xmlbind-generator/xmlbind"
)

const rssDoc = `<rss version="2.0"><channel><title>Go</title><link>https://go.dev</link>` +
	`<description><![CDATA[News & notes]]></description><language>en</language><ttl>60</ttl>` +
	`<image><url>https://go.dev/logo.png</url><title>Go</title></image>` +
	`<item><title>Go 1.24</title><link>https://go.dev/1.24</link>` +
	`<description><![CDATA[<b>released</b>]]></description><pubDate>Tue, 11 Feb 2025</pubDate>` +
	`<explicit>no</explicit><guid isPermaLink="false">go-1.24</guid>` +
	`<enclosure url="https://go.dev/x.mp3" length="1024" type="audio/mpeg"/>` +
	`<category>release</category><thumbnail url="https://go.dev/t.png" width="64"/>` +
	`<content url="https://go.dev/v.mp4" type="video/mp4" duration="90"/></item></channel></rss>`

func rssConfig(t *testing.T) (*xmlbind.Config, model.TypeID) {
	t.Helper()

	mf, err := mapping.LoadFile("../mapping/testdata/rss.yaml")
	require.NoError(t, err)

	schema, err := mapping.Build(mf)
	require.NoError(t, err)

	res, err := plan.CompileAll(context.Background(), schema.Model, schema.Hierarchy,
		plan.Options{PrimitiveConverters: schema.PrimitiveConverters})
	require.NoError(t, err)
	require.NoError(t, res.Err())

	reg := interp.NewRegistry()
	feedID := interp.Bind[rss.Feed](reg, model.TypeID{})
	interp.Bind[rss.Image](reg, model.TypeID{})
	interp.Bind[rss.Item](reg, model.TypeID{})
	interp.Bind[rss.GUID](reg, model.TypeID{})
	interp.Bind[rss.Media](reg, model.TypeID{})
	interp.Bind[rss.Thumbnail](reg, model.TypeID{})
	interp.Bind[rss.Content](reg, model.TypeID{})
	interp.Bind[rss.Enclosure](reg, model.TypeID{})
	require.NoError(t, reg.RegisterConstructor("NewEnclosure", rss.NewEnclosure))

	cfg := xmlbind.NewConfig(xmlbind.WithConverter("yesno", xmlbind.ConverterOf(rss.ParseYesNo, rss.FormatYesNo)))
	require.NoError(t, reg.Install(cfg, res.Plans))

	return cfg, feedID
}

func TestRSS_RoundTrip(t *testing.T) {
	cfg, feedID := rssConfig(t)

	feed, err := decode[*rss.Feed](cfg, feedID, rssDoc)
	require.NoError(t, err)

	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "News & notes", feed.Description)
	require.NotNil(t, feed.Language)
	assert.Equal(t, "en", *feed.Language)
	assert.Equal(t, 60, feed.TTL)
	require.NotNil(t, feed.Image)
	assert.Equal(t, rss.Image{URL: "https://go.dev/logo.png", Title: "Go"}, *feed.Image)

	require.Len(t, feed.Items, 1)
	item := feed.Items[0]
	assert.Equal(t, "<b>released</b>", item.Description)
	assert.False(t, item.Explicit)
	assert.Equal(t, &rss.GUID{Value: "go-1.24"}, item.GUID)
	require.NotNil(t, item.Enclosure)
	assert.Equal(t, rss.NewEnclosure("https://go.dev/x.mp3", 1024, "audio/mpeg"), *item.Enclosure)
	assert.Equal(t, []string{"release"}, item.Categories)

	duration := 90
	assert.Equal(t, []rss.Media{
		&rss.Thumbnail{URL: "https://go.dev/t.png", Width: 64},
		&rss.Content{URL: "https://go.dev/v.mp4", Type: "video/mp4", Duration: &duration},
	}, item.Media)

	out, err := encode(cfg, feedID, feed)
	require.NoError(t, err)
	assert.Equal(t, rssDoc, out)
}

func TestRSS_Lenient(t *testing.T) {
	cfg, feedID := rssConfig(t)
	cfg.ExceptionOnUnreadXML = false

	doc := `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom"><channel>` +
		`<atom:link href="x"/><title>T</title><generator>hugo</generator>` +
		`<item><explicit>YES</explicit><comments>c</comments></item></channel></rss>`

	feed, err := decode[*rss.Feed](cfg, feedID, doc)
	require.NoError(t, err)
	assert.Equal(t, "T", feed.Title)
	require.Len(t, feed.Items, 1)
	assert.True(t, feed.Items[0].Explicit)
	assert.Nil(t, feed.Items[0].Media)
}
