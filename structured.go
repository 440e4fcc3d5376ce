// structured.go — the JSON document form of a traceback error.
//
// Document layout (keys always in this order):
//
//	{
//	  "frames": [{"message": "...", "file": "...", "line": 42, "timestamp": "RFC3339Nano UTC"}, ...],
//	  "extra_data": <payload> | null,
//	  "project": "...",          // only when set
//	  "computer_name": "...",    // only when set
//	  "username": "...",         // only when set
//	  "metadata": {"k": "v"}     // caller-defined keys in insertion order, only when any
//	}
//
// extra_data is always present; an absent payload is an explicit null.
package traceback

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI sorts map keys so payload encoding is deterministic.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeAPI is jsonAPI with UseNumber: payload numbers decode as json.Number
// and keep every digit, so integers above 2^53 survive a round trip.
var decodeAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Document is the structured representation of an Error.
type Document struct {
	Frames       []FrameDoc `json:"frames"`
	ExtraData    any        `json:"extra_data"`
	Project      *string    `json:"project,omitempty"`
	ComputerName *string    `json:"computer_name,omitempty"`
	Username     *string    `json:"username,omitempty"`
	Metadata     Metadata   `json:"metadata,omitempty"`
}

// FrameDoc is one serialized frame.
type FrameDoc struct {
	Message   string    `json:"message"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Timestamp time.Time `json:"timestamp"`
}

// MetaField is one caller-defined metadata entry.
type MetaField struct {
	Key   string
	Value string
}

// Metadata is an insertion-ordered string map. It encodes as a JSON object
// whose key order matches the slice order.
type Metadata []MetaField

// MarshalJSON writes m as an ordered JSON object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, f := range m {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(f.Key)
		stream.WriteString(f.Value)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// UnmarshalJSON reads a JSON object of strings, keeping key order.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	var out Metadata
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		*m = nil
		return iter.Error
	}
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		if it.WhatIsNext() != jsoniter.StringValue {
			it.ReportError("metadata", fmt.Sprintf("value of %q is not a string", key))
			return false
		}
		out = append(out, MetaField{Key: key, Value: it.ReadString()})
		return true
	})
	if iter.Error != nil {
		return iter.Error
	}
	*m = out
	return nil
}

// Structured returns the document form of e. It fails with a
// SerializationFailed error when the payload cannot be represented as JSON.
func (e *Error) Structured() (Document, error) {
	if e == nil {
		return Document{}, serializationFailed("structured", errors.New("nil error"))
	}
	doc := Document{Frames: make([]FrameDoc, len(e.frames))}
	for i, f := range e.frames {
		doc.Frames[i] = FrameDoc{
			Message:   f.Message,
			File:      f.Location.File,
			Line:      f.Location.Line,
			Timestamp: f.Timestamp,
		}
	}
	if e.hasExtra {
		// Probe the payload here so the failure is reported by Structured and
		// not deferred to whoever encodes the Document.
		if _, err := jsonAPI.Marshal(e.extra); err != nil {
			return Document{}, serializationFailed("structured", err)
		}
		doc.ExtraData = cloneValue(e.extra)
	}
	if v, ok := e.meta.get(KeyProject); ok {
		doc.Project = &v
	}
	if v, ok := e.meta.get(KeyComputerName); ok {
		doc.ComputerName = &v
	}
	if v, ok := e.meta.get(KeyUsername); ok {
		doc.Username = &v
	}
	for _, f := range e.meta.custom() {
		doc.Metadata = append(doc.Metadata, MetaField{Key: f.key, Value: f.val})
	}
	return doc, nil
}

// MarshalJSON encodes e as its Document.
func (e *Error) MarshalJSON() ([]byte, error) {
	doc, err := e.Structured()
	if err != nil {
		return nil, err
	}
	b, err := jsonAPI.Marshal(doc)
	if err != nil {
		return nil, serializationFailed("marshal", err)
	}
	return b, nil
}

// MarshalIndent is MarshalJSON with indentation, for files meant to be read
// by people.
func (e *Error) MarshalIndent(prefix, indent string) ([]byte, error) {
	doc, err := e.Structured()
	if err != nil {
		return nil, err
	}
	b, err := jsonAPI.MarshalIndent(doc, prefix, indent)
	if err != nil {
		return nil, serializationFailed("marshal", err)
	}
	return b, nil
}

// UnmarshalJSON replaces *e with the error decoded from data. See Parse.
func (e *Error) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*e = *parsed
	return nil
}

// Parse decodes a Document and rebuilds the Error it describes. Numbers in
// the payload come back as json.Number.
func Parse(data []byte) (*Error, error) {
	var doc Document
	if err := decodeAPI.Unmarshal(data, &doc); err != nil {
		return nil, serializationFailed("parse", err)
	}
	return FromDocument(doc)
}

// FromDocument rebuilds an Error from doc. The document must hold at least
// one frame, valid locations and non-decreasing timestamps.
func FromDocument(doc Document) (*Error, error) {
	if len(doc.Frames) == 0 {
		return nil, serializationFailed("parse", errors.New("document has no frames"))
	}
	e := &Error{frames: make([]Frame, len(doc.Frames))}
	for i, fd := range doc.Frames {
		loc := Location{File: fd.File, Line: fd.Line}
		if !loc.Valid() {
			return nil, invalidLocation("parse", loc)
		}
		ts := fd.Timestamp.UTC()
		if i > 0 && ts.Before(e.frames[i-1].Timestamp) {
			return nil, serializationFailed("parse", fmt.Errorf("frame %d timestamp precedes frame %d", i, i-1))
		}
		e.frames[i] = Frame{Message: fd.Message, Location: loc, Timestamp: ts}
	}
	if !isNilPayload(doc.ExtraData) {
		e.extra = cloneValue(doc.ExtraData)
		e.hasExtra = true
	}
	if doc.Project != nil {
		e.meta = e.meta.with(KeyProject, *doc.Project)
	}
	if doc.ComputerName != nil {
		e.meta = e.meta.with(KeyComputerName, *doc.ComputerName)
	}
	if doc.Username != nil {
		e.meta = e.meta.with(KeyUsername, *doc.Username)
	}
	for _, f := range doc.Metadata {
		e.meta = e.meta.with(f.Key, f.Value)
	}
	return e, nil
}
