package trivia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesEncodeInIDOrder(t *testing.T) {
	categories := Categories{}
	for id := int32(12); id >= 1; id-- {
		categories[id] = "c" + string(rune('a'+id-1))
	}

	data, err := json.Marshal(categories)
	require.NoError(t, err)
	assert.Equal(t,
		`{"1":"ca","2":"cb","3":"cc","4":"cd","5":"ce","6":"cf","7":"cg","8":"ch","9":"ci","10":"cj","11":"ck","12":"cl"}`,
		string(data))

	var decoded Categories
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, categories, decoded)
}

func TestCategoriesEncodeEmptyAndNil(t *testing.T) {
	data, err := json.Marshal(Categories{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	data, err = json.Marshal(Categories(nil))
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))

	data, err = json.Marshal(map[string]interface{}{"categories": Categories{2: `say "hi"`}})
	require.NoError(t, err)
	assert.Equal(t, `{"categories":{"2":"say \"hi\""}}`, string(data))
}
