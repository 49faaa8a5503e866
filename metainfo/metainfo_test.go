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
	"bytes"
	"reflect"
	"testing"

	"github.com/xgfone/bencode"
)

func TestMetaInfo(t *testing.T) {
	info := Info{
		Name:        "file",
		PieceLength: PieceSize256KB,
		Pieces:      Hashes{NewHashFromBytes([]byte("piece"))},
		Length:      100,
	}

	infoBytes, err := bencode.EncodeBytes(info)
	if err != nil {
		t.Fatal(err)
	}

	mi := MetaInfo{
		InfoBytes:    infoBytes,
		Announce:     "http://tracker.example.com/announce",
		AnnounceList: AnnounceList{{"http://tracker.example.com/announce"}},
		CreationDate: 1690000000,
		Comment:      "comment",
		CreatedBy:    "test",
	}

	buf := bytes.NewBuffer(nil)
	if err = mi.Write(buf); err != nil {
		t.Fatal(err)
	}

	rmi, err := Load(buf)
	if err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(rmi, mi) {
		t.Errorf("expect %+v, but got %+v", mi, rmi)
	}

	rinfo, err := rmi.Info()
	if err != nil {
		t.Fatal(err)
	} else if !reflect.DeepEqual(rinfo, info) {
		t.Errorf("expect %+v, but got %+v", info, rinfo)
	}

	if rmi.InfoHash() != mi.InfoHash() {
		t.Errorf("expect %s, but got %s", mi.InfoHash(), rmi.InfoHash())
	}

	announces := rmi.Announces().Unique()
	if len(announces) != 1 || announces[0] != mi.Announce {
		t.Errorf("unexpected announces %v", announces)
	}
}

func TestMetaInfo_Magnet(t *testing.T) {
	info := Info{Name: "file", PieceLength: PieceSize256KB, Length: 1}
	infoBytes, err := bencode.EncodeBytes(info)
	if err != nil {
		t.Fatal(err)
	}

	mi := MetaInfo{InfoBytes: infoBytes, Announce: "http://tracker.example.com/announce"}
	m := mi.Magnet("", Hash{})
	if m.DisplayName != "file" {
		t.Errorf("expect 'file', but got %q", m.DisplayName)
	}
	if m.InfoHash != mi.InfoHash() {
		t.Errorf("expect %s, but got %s", mi.InfoHash(), m.InfoHash)
	}

	rm, err := ParseMagnetURI(m.String())
	if err != nil {
		t.Fatal(err)
	}
	if rm.InfoHash != m.InfoHash || rm.DisplayName != m.DisplayName {
		t.Errorf("expect %+v, but got %+v", m, rm)
	}
	if !reflect.DeepEqual(rm.Trackers, m.Trackers) {
		t.Errorf("expect %v, but got %v", m.Trackers, rm.Trackers)
	}
}

func TestURLList(t *testing.T) {
	var us URLList
	if err := us.UnmarshalBencode([]byte("17:http://a.com/dir/")); err != nil {
		t.Error(err)
	} else if len(us) != 1 {
		t.Errorf("unexpected url-list %v", us)
	} else if url := us.FullURL(0, "name"); url != "http://a.com/dir/name" {
		t.Errorf("unexpected full url %q", url)
	}

	if err := us.UnmarshalBencode([]byte("l5:http:e")); err != nil {
		t.Error(err)
	}
	if err := us.UnmarshalBencode([]byte("li1ee")); err == nil {
		t.Errorf("expect an error for the non-string element")
	}
}
