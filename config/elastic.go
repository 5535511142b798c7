package config

import (
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticClient is the optional search client. Nil when ELASTIC_ADDR is not
// set or the node is unreachable; callers fall back to SQL search.
var ElasticClient *elasticsearch.Client

func InitElastic() {
	addr := os.Getenv("ELASTIC_ADDR")
	if addr == "" {
		ElasticClient = nil
		return
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASS"),
	})
	if err != nil {
		log.Printf("Elasticsearch configured but client init failed: %v", err)
		ElasticClient = nil
		return
	}
	ElasticClient = client
}
