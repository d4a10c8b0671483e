package server

import (
	"fmt"

	"jobmatch/internal/utils"
)

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayCorpusInfo()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health    - Health check")
	fmt.Println("  GET  /stats     - Server and matching engine statistics")
	fmt.Println("  POST /recommend - Rank job postings for a resume (requires API key)")
	fmt.Println("  POST /skillgap  - Skill gap analysis for a job description (requires API key)")
	fmt.Println("  POST /warmup    - Fit the matching model ahead of traffic (requires API key)")
}

// displayCorpusInfo shows the loaded corpus state
func (s *Server) displayCorpusInfo() {
	fmt.Printf("Job corpus: %d postings loaded\n", s.Recommender.CorpusSize())
	if s.AppConfig.Corpus.Watch {
		fmt.Println("  - Feed staleness watching enabled")
	}
	if s.AppConfig.Corpus.WarmOnStart {
		fmt.Println("  - Model warmup on startup enabled")
	}
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /recommend and /skillgap")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %s\n", utils.FormatFileSize(s.MaxRequestSize))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
