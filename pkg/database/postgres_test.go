package database

import "testing"

func TestDSN(t *testing.T) {
	c := &Config{Host: "db", Port: "5433", User: "quiz", Password: "secret", DBName: "docquiz"}
	want := "host=db user=quiz password=secret dbname=docquiz port=5433 sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
