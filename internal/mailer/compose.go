package mailer

import (
	"fmt"

	"github.com/petism/backend/internal/models"
)

// ComposeCreationNotice builds the subject and body for the petition-created
// email.
func ComposeCreationNotice(petition *models.Petition, frontendURL string) (string, string) {
	subject := fmt.Sprintf("Petition Created: %s", petition.Title)
	body := fmt.Sprintf(`You've started a movement!

Your petition %q has been successfully created.

Details:
- Target Signatures: %d
- Description: %s

Share your petition to gather support:
%s/note/%s

Good luck!`,
		petition.Title,
		petition.TargetSignatures,
		truncate(petition.Content, 100),
		frontendURL,
		petition.ID.Hex(),
	)
	return subject, body
}

// ComposeGoalReachedNotice builds the subject and body for the victory email
// sent when a petition first reaches its signature goal.
func ComposeGoalReachedNotice(petition *models.Petition, frontendURL string) (string, string) {
	subject := fmt.Sprintf("VICTORY: Your petition %q has reached its goal!", petition.Title)
	body := fmt.Sprintf(`CONGRATULATIONS!

Your petition %q has successfully reached its target of %d signatures!

This is a huge milestone. Thank you for using PetISM to make a difference.

Final Stats:
- Total Signatures: %d
- Target: %d

View your victory here: %s/note/%s`,
		petition.Title,
		petition.TargetSignatures,
		petition.SignatureCount,
		petition.TargetSignatures,
		frontendURL,
		petition.ID.Hex(),
	)
	return subject, body
}

// truncate shortens s to at most n runes, appending an ellipsis when cut
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
