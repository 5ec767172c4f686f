// classifier.go - Local in-domain check for user queries.
//
// The model is normally asked to classify queries itself via the chat prompt;
// this keyword matcher is the fallback used when the remote call fails.

package identify

import "strings"

// RefusalMessage is the exact sentence returned for out-of-domain queries.
// Both the chat prompt and the local fallback use this same text so the two
// classification paths are indistinguishable to the user.
const RefusalMessage = "I can only help with farming and agriculture topics. Please ask me about crops, pests, livestock, or farm management."

// Substring matching is deliberately permissive: "planted" matches "plant".
// False negatives are costlier than false positives for a help assistant.
var domainKeywords = []string{
	// crops
	"plant", "crop", "maize", "corn", "wheat", "rice", "tomato", "potato",
	"cassava", "bean", "vegetable", "fruit", "seed", "harvest", "banana",
	// pests and diseases
	"pest", "aphid", "armyworm", "locust", "caterpillar", "weevil",
	"fungus", "blight", "mildew", "disease", "weed", "insect", "larva",
	// practices
	"soil", "fertilizer", "fertiliser", "compost", "irrigat", "mulch",
	"prune", "pesticide", "herbicide", "greenhouse", "farm", "garden",
	"agricultur", "plough", "sow",
	// livestock
	"livestock", "cattle", "poultry", "goat", "sheep", "chicken", "dairy",
	// climate
	"drought", "rainfall", "frost", "growing season",
}

// IsInDomain reports whether the query is agriculture-related. Empty or
// whitespace-only input is out of domain.
func IsInDomain(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false
	}
	for _, kw := range domainKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
