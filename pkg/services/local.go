package services

import (
	"context"
	"fmt"
	"strings"

	"getmait/models"
)

// LocalReply is a canned assistant used in staging when no webhook is
// configured, so the widget can be exercised end-to-end without n8n.
type LocalReply struct{}

func (LocalReply) Send(_ context.Context, message string, store models.StoreSummary) (string, error) {
	last := strings.TrimSpace(message)
	if last == "" {
		last = "din bestilling"
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "Tak, Mait! Jeg har noteret: %s\n\n", truncate(last, 60))
	fmt.Fprintf(b, "Hos %s kan du:\n", store.Name)
	fmt.Fprintln(b, "- Tilføje flere retter ved bare at skrive dem her.")
	fmt.Fprintln(b, "- Vælge afhentningstidspunkt (f.eks. \"klar kl. 18.00\").")
	fmt.Fprintf(b, "- Ringe direkte på %s hvis det haster.\n", store.ContactPhone)
	fmt.Fprintln(b, "\nSkriv \"færdig\" når din bestilling er komplet, så sender jeg den til køkkenet.")
	return b.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
