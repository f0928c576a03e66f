package storage

import (
	"Ieum/storage/database"
	"Ieum/storage/mq"
	"Ieum/storage/objectstore"
	"Ieum/storage/redis"
)

// Init brings up every storage backend a process needs.
func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	if err := objectstore.Init(); err != nil {
		return err
	}

	return nil
}
