package mcpserver

// DatasetFormatContract describes the YAML layout of a temple dataset file
// so LLM consumers can propose additions in the right shape.
const DatasetFormatContract = `# Torii Dataset Format Contract

A dataset is a single YAML document with a top-level ` + "`temples`" + ` list.
List order is the display order on the map and in the result list.

## Fields

| Field | Type | Rules |
|---|---|---|
| id | integer | REQUIRED, > 0, unique across the file |
| name | string | REQUIRED, romanised display name |
| native_name | string | Japanese name |
| type | string | REQUIRED, one of ` + "`buddhist`, `shinto`" + ` |
| category | string | REQUIRED, one of ` + "`famous`, `buddhist`, `shinto`" + ` |
| coordinates.lat | number | REQUIRED, latitude in [-90, 90] |
| coordinates.lng | number | REQUIRED, longitude in [-180, 180] |
| address | string | postal address |
| description | string | one or two sentences; searched by the search box |
| history | string | shown in the detail view |
| best_time | string | shown in the detail view |
| highlights | list of strings | shown in the detail view, in order |

Records breaking a rule, or holding a value of the wrong type, are skipped
when the file is loaded and a warning is logged; the remaining records are
still served.

## Filters

The filter ` + "`all`" + ` selects everything. Any other tag selects records whose
` + "`type`" + ` OR ` + "`category`" + ` equals the tag, so ` + "`buddhist`" + ` also selects a
Shinto shrine listed with category ` + "`buddhist`" + `.

## Example

` + "```" + `yaml
temples:
  - id: 1
    name: Senso-ji
    native_name: 浅草寺
    type: buddhist
    category: famous
    coordinates:
      lat: 35.7148
      lng: 139.7967
    address: 2-3-1 Asakusa, Taito City, Tokyo
    description: Tokyo's oldest temple.
    history: Founded in 645 AD.
    best_time: Early morning.
    highlights:
      - Kaminarimon (Thunder Gate)
` + "```" + `
`
