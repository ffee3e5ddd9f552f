package seed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"restaurantapi/internal/model"
)

const maxLineBytes = 1 << 20

// Decode reads restaurant records written as MongoDB extended JSON, either as a
// single array or as one document per line. Store-assigned _id values are dropped
// so the target store assigns its own.
func Decode(r io.Reader) ([]model.Restaurant, error) {
	br := bufio.NewReader(r)

	first, err := firstNonSpace(br)
	if err == io.EOF {
		return []model.Restaurant{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading seed data")
	}

	if first == '[' {
		return decodeArray(br)
	}
	return decodeLines(br)
}

func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func decodeArray(r io.Reader) ([]model.Restaurant, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "parsing seed array")
	}

	out := make([]model.Restaurant, 0, len(raw))
	for i, doc := range raw {
		rec, err := decodeOne(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "seed document %d", i)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeLines(r io.Reader) ([]model.Restaurant, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	out := make([]model.Restaurant, 0)
	line := 0
	for sc.Scan() {
		line++
		doc := bytes.TrimSpace(sc.Bytes())
		if len(doc) == 0 {
			continue
		}
		rec, err := decodeOne(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "seed line %d", line)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading seed lines")
	}
	return out, nil
}

func decodeOne(doc []byte) (model.Restaurant, error) {
	var rec model.Restaurant
	if err := bson.UnmarshalExtJSON(doc, false, &rec); err != nil {
		return model.Restaurant{}, err
	}
	rec.ID = ""
	return rec, nil
}
