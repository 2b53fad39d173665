package model

// AudioSource is a capture endpoint reported by the audio server.
type AudioSource struct {
	// Name is the identifier passed to the recorder's --target option.
	Name        string
	Description string
}
