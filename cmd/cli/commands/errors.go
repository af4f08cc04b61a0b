package commands

import "errors"

var errNoDatabase = errors.New("no database configured (set databaseURL or ALLOCATOR_DATABASE_URL)")
