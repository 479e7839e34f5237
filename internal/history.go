package internal

// HistoryItem is one completed calculation, e.g. {"2 + 3 =", "5"}.
type HistoryItem struct {
	Expression string `json:"expression" yaml:"expression"`
	Result     string `json:"result" yaml:"result"`
}

func prependHistory(history []HistoryItem, item HistoryItem) []HistoryItem {
	out := make([]HistoryItem, 0, len(history)+1)
	out = append(out, item)
	return append(out, history...)
}
