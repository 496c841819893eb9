package ds_test

import (
	"testing"

	"contentgenius/internal/app/catalog"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFor(t *testing.T) {
	tpl := ds.ContentTemplate{BasePrice: 25.0, DefaultWordCount: 800}

	assert.Equal(t, 50.0, tpl.PriceFor(1600))
	assert.Equal(t, 25.0, tpl.PriceFor(800))
	assert.Equal(t, 10.94, tpl.PriceFor(350))
}

func TestPriceForCatalog(t *testing.T) {
	for _, tpl := range catalog.DefaultTemplates() {
		assert.Equal(t, tpl.BasePrice, tpl.PriceFor(tpl.DefaultWordCount), tpl.ContentType)
	}
}

func TestPromptFor(t *testing.T) {
	tpl := ds.ContentTemplate{TemplatePrompt: "Write about {topic}. Really, {topic}."}
	assert.Equal(t, "Write about Go. Really, Go.", tpl.PromptFor("Go"))
}

func TestUserPassword(t *testing.T) {
	u := &ds.User{Username: "alice"}
	require.NoError(t, u.SetPassword("s3cret"))

	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUserRole(t *testing.T) {
	assert.Equal(t, role.User, (&ds.User{}).Role())
	assert.Equal(t, role.Admin, (&ds.User{IsAdmin: true}).Role())
}

func TestRequirementsMerge(t *testing.T) {
	base := ds.Requirements{Tone: "formal", Keywords: "go"}
	merged := base.Merge(ds.Requirements{RevisionNotes: "shorter", Tone: "casual"})

	assert.Equal(t, ds.Requirements{Tone: "casual", Keywords: "go", RevisionNotes: "shorter"}, merged)
	assert.True(t, ds.Requirements{}.IsEmpty())
	assert.False(t, merged.IsEmpty())
}

func TestOrderRequirementsRoundTrip(t *testing.T) {
	var o ds.Order
	o.SetRequirements(ds.Requirements{TargetAudience: "devs"})
	assert.Equal(t, "devs", o.GetRequirements().TargetAudience)
}

func TestOrderStatusProcessable(t *testing.T) {
	assert.True(t, ds.OrderStatusPending.Processable())
	assert.True(t, ds.OrderStatusInProgress.Processable())
	assert.False(t, ds.OrderStatusCompleted.Processable())
	assert.False(t, ds.OrderStatusCancelled.Processable())
}
