package benchmarks

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"testing"

	bolt "go.etcd.io/bbolt"
)

// Cached benchmark artifact directory
const benchCacheDir = "testdata/benchdata"

const (
	// benchFileSize is the size of the shared data file (8 MiB).
	benchFileSize = 8 << 20

	// recordSize is the fixed record width used by the record
	// benchmarks.
	recordSize = 128

	// recordCount is how many records fit in the data file.
	recordCount = benchFileSize / recordSize

	// recordBucket is the bbolt bucket holding the records.
	recordBucket = "records"
)

var (
	cacheMu  sync.Mutex
	dataPath string
	boltDB   *bolt.DB
)

// getDataFile returns the shared patterned data file, creating it on
// first use. The file is reused across benchmark runs.
func getDataFile(b *testing.B) string {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if dataPath != "" {
		return dataPath
	}
	if err := os.MkdirAll(benchCacheDir, 0755); err != nil {
		b.Fatal(err)
	}

	path := filepath.Join(benchCacheDir, "data.bin")
	if fi, err := os.Stat(path); err != nil || fi.Size() != benchFileSize {
		data := make([]byte, benchFileSize)
		for i := range data {
			data[i] = byte(i % 251)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			b.Fatal(err)
		}
	}
	dataPath = path
	return path
}

// getBoltDB returns a bbolt database holding the data file's records
// keyed by big-endian record index, creating it on first use.
func getBoltDB(b *testing.B) *bolt.DB {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if boltDB != nil {
		return boltDB
	}
	if err := os.MkdirAll(benchCacheDir, 0755); err != nil {
		b.Fatal(err)
	}

	path := filepath.Join(benchCacheDir, "records.bolt")
	populate := !fileExists(path)

	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		b.Fatal(err)
	}
	if populate {
		err = db.Update(func(tx *bolt.Tx) error {
			bkt, err := tx.CreateBucketIfNotExists([]byte(recordBucket))
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			record := make([]byte, recordSize)
			for i := 0; i < recordCount; i++ {
				binary.BigEndian.PutUint64(key, uint64(i))
				binary.BigEndian.PutUint64(record, uint64(i))
				if err := bkt.Put(key, record); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			b.Fatal(err)
		}
	}
	boltDB = db
	return db
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
