package mailer

import "sync"

// SentMail is one delivery captured by a Recorder.
type SentMail struct {
	To      string
	Subject string
	HTML    string
}

// Recorder is an in-memory Mailer used by tests.
type Recorder struct {
	mu   sync.Mutex
	sent []SentMail
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(to, subject, html string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, SentMail{To: to, Subject: subject, HTML: html})
	return nil
}

// Sent returns a copy of everything delivered so far.
func (r *Recorder) Sent() []SentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SentMail, len(r.sent))
	copy(out, r.sent)
	return out
}
