// Copyright © 2022 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package abijson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokens(t *testing.T, src string) []Token {
	l := NewLexer([]byte(src))
	var out []Token
	for {
		tok, err := l.Next()
		assert.NoError(t, err)
		out = append(out, tok)
		if tok.Kind == Number || tok.Kind == String || tok.Kind == Bool || tok.Kind == Null {
			if len(l.stack) == 0 {
				break
			}
		}
		if tok.Kind == EndObject || tok.Kind == EndArray {
			if len(l.stack) == 0 {
				break
			}
		}
	}
	return out
}

func TestLexerScalarRoot(t *testing.T) {
	toks := tokens(t, `42`)
	assert.Len(t, toks, 1)
	assert.Equal(t, Number, toks[0].Kind)
	assert.Equal(t, "42", string(toks[0].Text))
}

func TestLexerEmptyObject(t *testing.T) {
	toks := tokens(t, `{}`)
	assert.Equal(t, []Kind{StartObject, EndObject}, kindsOf(toks))
}

func TestLexerEmptyArray(t *testing.T) {
	toks := tokens(t, `[]`)
	assert.Equal(t, []Kind{StartArray, EndArray}, kindsOf(toks))
}

func TestLexerObjectWithFields(t *testing.T) {
	toks := tokens(t, `{"a":1,"b":"hi","c":true,"d":null}`)
	assert.Equal(t, []Kind{
		StartObject,
		Key, Number,
		Key, String,
		Key, Bool,
		Key, Null,
		EndObject,
	}, kindsOf(toks))
	assert.Equal(t, "a", string(toks[1].Text))
	assert.Equal(t, "1", string(toks[2].Text))
	assert.Equal(t, "b", string(toks[3].Text))
	assert.Equal(t, "hi", string(toks[4].Text))
	assert.Equal(t, "c", string(toks[5].Text))
	assert.True(t, toks[6].Bool)
	assert.Equal(t, "d", string(toks[7].Text))
}

func TestLexerNestedContainers(t *testing.T) {
	toks := tokens(t, `{"a":[1,2,{"b":3}]}`)
	assert.Equal(t, []Kind{
		StartObject,
		Key, StartArray,
		Number, Number,
		StartObject, Key, Number, EndObject,
		EndArray,
		EndObject,
	}, kindsOf(toks))
}

func TestLexerArrayOfStrings(t *testing.T) {
	toks := tokens(t, `["alpha","beta","gamma"]`)
	assert.Equal(t, []Kind{StartArray, String, String, String, EndArray}, kindsOf(toks))
	assert.Equal(t, "alpha", string(toks[1].Text))
	assert.Equal(t, "beta", string(toks[2].Text))
	assert.Equal(t, "gamma", string(toks[3].Text))
}

func TestLexerEscapeDecodingInPlace(t *testing.T) {
	l := NewLexer([]byte(`"a\nb\tc\"d\\e"`))
	tok, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, String, tok.Kind)
	assert.Equal(t, "a\nb\tc\"d\\e", string(tok.Text))
}

func TestLexerUnicodeEscape(t *testing.T) {
	l := NewLexer([]byte("\"\\u00e9\""))
	tok, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, "é", string(tok.Text))
}

func TestLexerSurrogatePairEscape(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	l := NewLexer([]byte("\"\\ud83d\\ude00\""))
	tok, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, "😀", string(tok.Text))
}

func TestLexerLoneSurrogateBecomesReplacementChar(t *testing.T) {
	l := NewLexer([]byte(`"\ud800x"`))
	tok, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, "�x", string(tok.Text))
}

func TestLexerPeekIsNullConsumesNull(t *testing.T) {
	l := NewLexer([]byte(`null`))
	assert.True(t, l.PeekIsNull())
}

func TestLexerPeekIsNullLeavesNonNullUntouched(t *testing.T) {
	l := NewLexer([]byte(`42`))
	assert.False(t, l.PeekIsNull())
	tok, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, Number, tok.Kind)
	assert.Equal(t, "42", string(tok.Text))
}

func TestLexerPeekIsNullInsideObjectField(t *testing.T) {
	l := NewLexer([]byte(`{"a":null,"b":1}`))
	tok, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, StartObject, tok.Kind)

	tok, err = l.Next()
	assert.NoError(t, err)
	assert.Equal(t, Key, tok.Kind)
	assert.Equal(t, "a", string(tok.Text))

	assert.True(t, l.PeekIsNull())

	tok, err = l.Next()
	assert.NoError(t, err)
	assert.Equal(t, Key, tok.Kind)
	assert.Equal(t, "b", string(tok.Text))
}

func TestLexerRejectsTrailingComma(t *testing.T) {
	l := NewLexer([]byte(`{"a":1,}`))
	_, err := l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLexerRejectsMissingComma(t *testing.T) {
	l := NewLexer([]byte(`[1 2]`))
	_, err := l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLexerRejectsMismatchedClose(t *testing.T) {
	l := NewLexer([]byte(`[1}`))
	_, err := l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.NoError(t, err)
	_, err = l.Next()
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLexerRejectsGarbageToken(t *testing.T) {
	l := NewLexer([]byte(`xyz`))
	_, err := l.Next()
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestLexerRejectsUnterminatedString(t *testing.T) {
	l := NewLexer([]byte(`"abc`))
	_, err := l.Next()
	assert.ErrorIs(t, err, ErrSyntax)
}

func kindsOf(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}
