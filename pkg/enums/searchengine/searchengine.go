package searchengine

//go:generate go-enum --values --names --noprefix --nocase

// Engine
/* ENUM(
mongodb_text, fileindex, elasticsearch
) */
type Engine string

// Resolve maps a configured engine name onto a known engine. The legacy
// name "whoosh" selects the local file index. ok is false when the name is
// not recognised, in which case MongodbText is returned.
func Resolve(name string) (Engine, bool) {
	if name == "" {
		return MongodbText, true
	}
	if e, err := ParseEngine(name); err == nil {
		return e, true
	}
	if name == "whoosh" {
		return Fileindex, true
	}
	return MongodbText, false
}
