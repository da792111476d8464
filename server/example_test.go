package server_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/jonwraymond/healthmock/server"
)

func Example() {
	s, err := server.New(server.DefaultConfig(server.ProfileFull))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	for _, path := range []string{
		"/health/mailer",
		"/toggle?component=mailer&healthy=false",
		"/health/mailer",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		fmt.Println(resp.StatusCode, string(body))
	}
	// Output:
	// 200 {"status":"ok"}
	// 200 {"component":"mailer","healthy": false}
	// 500 {"status":"fail"}
}

func ExampleParseProfile() {
	p, err := server.ParseProfile("single")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(p)
	// Output:
	// single
}
