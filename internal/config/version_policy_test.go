package config

import "testing"

func TestLoadFile_UnknownConfigVersion(t *testing.T) {
	cfg := writeCUE(t, "{\n  configVersion: \"2\"\n  root: \".\"\n}\n")
	_, err := LoadFile(cfg)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "unsupported configVersion: \"2\" (supported: 1)"
	if err.Error() != want {
		t.Fatalf("unexpected error\nwant: %s\n got: %s", want, err.Error())
	}
}

func TestLoadFile_CurrentConfigVersion(t *testing.T) {
	f, err := LoadFile(writeCUE(t, "configVersion: \""+CurrentConfigVersion+"\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.ConfigVersion != CurrentConfigVersion || f.HasRoot {
		t.Fatalf("unexpected file %+v", f)
	}
}
