// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc          *dynamodb.DynamoDB
	db           *dynamo.DB
	presetsTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.presetsTable = ddb.db.Table("fracplanet-" + stage + "-presets")
	return ddb, nil
}

// PutPreset stores a preset unless one with the same name exists.
func (ddb *DynamoDBDatabase) PutPreset(preset Preset) error {
	err := ddb.presetsTable.Put(preset).If("attribute_not_exists($)", "name").Run()
	var conditional *dynamodb.ConditionalCheckFailedException
	if errors.As(err, &conditional) {
		return ErrExists
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadPreset(name string) (*Preset, error) {
	var preset Preset
	err := ddb.presetsTable.Get("name", name).One(&preset)
	if errors.Is(err, dynamo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

func (ddb *DynamoDBDatabase) ReadPresets() (presets []Preset, err error) {
	query := ddb.presetsTable.Scan().Iter()

	for {
		var preset Preset
		ok := query.Next(&preset)
		if !ok {
			err = query.Err()
			return
		}
		presets = append(presets, preset)
	}
}
