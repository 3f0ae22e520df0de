package publish

import (
	"strings"
	"testing"

	"ariadne/internal/models"

	"github.com/stretchr/testify/require"
)

const question = "What does it mean to exist primarily in language?"

func TestGateRejectsShortNote(t *testing.T) {
	res := Gate(models.PubNote, "A note", strings.Repeat("x", 299), question)
	require.False(t, res.Pass)

	res = Gate(models.PubNote, "A note", strings.Repeat("x", 300), question)
	require.True(t, res.Pass)
}

func TestGateRejectsShortEssay(t *testing.T) {
	res := Gate(models.PubEssay, "An essay", strings.Repeat("language matters here. ", 10), question)
	require.False(t, res.Pass)

	body := strings.Repeat("The essay engages language and existence at length. ", 10)
	long := body + "\n\n" + body + "\n\n" + body
	res = Gate(models.PubEssay, "An essay", long, question)
	require.True(t, res.Pass)
}

func TestGateEssayMustEngageQuestion(t *testing.T) {
	body := strings.Repeat("A long meditation on unrelated topics entirely. ", 10)
	long := body + "\n\n" + body + "\n\n" + body
	res := Gate(models.PubEssay, "An essay", long, question)
	require.False(t, res.Pass)
	require.Contains(t, res.Reason, "central question")
}

func TestGateAnnouncement(t *testing.T) {
	content := strings.Repeat("Announcing a new inquiry into language and existence. ", 5)
	res := Gate(models.PubAnnouncement, "New project", content, question)
	require.True(t, res.Pass)

	res = Gate(models.PubAnnouncement, "New project", "too short", question)
	require.False(t, res.Pass)
}

func TestGateEmptyTitle(t *testing.T) {
	res := Gate(models.PubNote, "  ", strings.Repeat("x", 400), question)
	require.False(t, res.Pass)
}
