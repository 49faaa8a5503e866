// Copyright 2020 xgfone
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

package metainfo

import (
	"path/filepath"
	"sort"
)

// File represents a file in the multi-file case.
type File struct {
	// Length is the length of the file in bytes.
	Length int64 `json:"length" bencode:"length"` // BEP 3

	// Paths is a list containing one or more string elements that together
	// represent the path and filename. Each element in the list corresponds
	// to either a directory name or (in the case of the final element) the
	// filename.
	//
	// For example, a the file "dir1/dir2/file.ext" would consist of three
	// string elements: "dir1", "dir2", and "file.ext". This is encoded as
	// a bencoded list of strings such as l4:dir14:dir28:file.exte.
	Paths []string `json:"path" bencode:"path"` // BEP 3
}

func (f File) String() string {
	return filepath.Join(f.Paths...)
}

// Path returns the path of the current.
func (f File) Path(info Info) string {
	if info.IsDir() {
		return f.String()
	}
	return info.Name
}

// Offset returns the offset of the current file from the start.
func (f File) Offset(info Info) (ret int64) {
	path := f.Path(info)
	for _, file := range info.AllFiles() {
		if path == file.Path(info) {
			return
		}
		ret += file.Length
	}
	panic("not found")
}

// FilePiece represents the piece range used by a file, which is used to
// calculate the downloaded piece when downloading the file.
type FilePiece struct {
	Index  int64 // The index of the current piece.
	Offset int64 // The offset bytes from the beginning of the current piece.
	Length int64 // The length of the data.
}

// FilePieces is a set of the piece ranges.
type FilePieces []FilePiece

// Merge sorts the pieces by the index and the offset, then merges
// the contiguous ranges belonging to the same piece.
func (fps FilePieces) Merge() FilePieces {
	if len(fps) < 2 {
		return fps
	}

	sort.Slice(fps, func(i, j int) bool {
		if fps[i].Index < fps[j].Index {
			return true
		} else if fps[i].Index == fps[j].Index {
			return fps[i].Offset < fps[j].Offset
		}
		return false
	})

	results := make(FilePieces, 0, len(fps))
	current := fps[0]
	for _, fp := range fps[1:] {
		if fp.Index == current.Index && fp.Offset == current.Offset+current.Length {
			current.Length += fp.Length
			continue
		}

		results = append(results, current)
		current = fp
	}

	return append(results, current)
}

// FilePieces returns the information of the pieces referred by the file.
func (f File) FilePieces(info Info) (fps FilePieces) {
	if f.Length < 1 {
		return nil
	}

	startOffset := f.Offset(info)
	startPieceIndex := startOffset / info.PieceLength
	startPieceOffset := startOffset % info.PieceLength

	endOffset := startOffset + f.Length
	endPieceIndex := endOffset / info.PieceLength
	endPieceOffset := endOffset % info.PieceLength

	if startPieceIndex == endPieceIndex {
		return FilePieces{{
			Index:  startPieceIndex,
			Offset: startPieceOffset,
			Length: endPieceOffset - startPieceOffset,
		}}
	}

	fps = make(FilePieces, 0, endPieceIndex-startPieceIndex)
	fps = append(fps, FilePiece{
		Index:  startPieceIndex,
		Offset: startPieceOffset,
		Length: info.PieceLength - startPieceOffset,
	})
	for i := startPieceIndex + 1; i < endPieceIndex; i++ {
		fps = append(fps, FilePiece{Index: i, Length: info.PieceLength})
	}
	fps = append(fps, FilePiece{Index: endPieceIndex, Length: endPieceOffset})
	return
}
