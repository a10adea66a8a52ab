package lsp

import "sync"

// document pairs the text of an open file with its analysis.
type document struct {
	content string
	result  *AnalysisResult
}

// DocumentStore holds open documents keyed by URI. Every update re-analyzes
// the document, so requests always see an analysis that matches the text.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

// Open stores and analyzes a newly opened document.
func (s *DocumentStore) Open(uri, content string) *AnalysisResult {
	return s.Update(uri, content)
}

// Update stores and analyzes new content for a document.
func (s *DocumentStore) Update(uri, content string) *AnalysisResult {
	result := Analyze(uri, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content, result: result}
	return result
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the current text of a document.
func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the analysis of a document, or nil if it is not open.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	return doc.result
}
