package messaging

import (
	"fmt"
	"strings"
)

// subjectPrefix is the outbound subject convention. The reply router's
// title-matching fallback depends on this exact format; changing it breaks
// routing of replies.
const subjectPrefix = "Daily Translation: "

// Subject builds the outbound message subject for a text.
func Subject(textTitle string) string {
	return subjectPrefix + textTitle
}

// TitleFromSubject extracts the text title from a reply subject, if the
// subject follows the outbound convention.
func TitleFromSubject(subject string) (string, bool) {
	if !strings.HasPrefix(subject, subjectPrefix) {
		return "", false
	}
	return strings.TrimSpace(subject[len(subjectPrefix):]), true
}

// FormatEmailBody renders the long-form daily portion: each sentence tagged
// with its 1-based absolute index in brackets, followed by reply
// instructions that show the expected answer format.
func FormatEmailBody(textTitle string, sentences []string, indices []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are your sentences to translate from '%s':\n\n", textTitle)
	for i, sentence := range sentences {
		fmt.Fprintf(&b, "[%d] %s\n\n", indices[i]+1, sentence)
	}
	b.WriteString("To submit your translations, please reply to this message with each translation numbered as shown above.\n\n")
	b.WriteString("Example:\n")
	b.WriteString("[1] Your translation of the first sentence.\n")
	b.WriteString("[2] Your translation of the second sentence.\n")
	return b.String()
}

// FormatSMSBody renders the compact numbered list used for SMS delivery.
func FormatSMSBody(textTitle string, sentences []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translation: %s\n\n", textTitle)
	for i, sentence := range sentences {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sentence)
	}
	return b.String()
}
